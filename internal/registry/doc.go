// Package registry provides the process-wide collection point for deferred
// registrations.
//
// Any package can contribute an Entry from its init function without knowing
// about any other contributor. The host drains the registry exactly once
// while it builds itself (see Plugin), which applies every entry to the
// host's build state. Entries form an unordered set: nothing may depend on
// the order in which they are contributed or applied, and entries are
// idempotent "init if absent" mutations.
//
// Lifecycle:
//
//	Empty -> Populated -> Draining -> Drained
//
// Contributions are accepted until the drain starts; Drained is terminal.
//
// Before any entry runs, the drain checks that every schedule label an entry
// requires is either provided by another entry or already known to the host.
// A misspelled schedule path fails startup with a message naming the path and
// the file that contributed it.
package registry
