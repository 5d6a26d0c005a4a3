// Package compiler turns a parsed schedule tree into labeled schedules and
// the registry entries that wire them into a host.
//
// Every node is labeled with its root-to-node path. For each node that has
// children the compiler builds a chain runner that executes the children
// strictly left to right; a child carrying run_every is wrapped in a
// fixed-timestep runner. One registry entry per such node attaches its chain
// runner to the node's own schedule, so the whole tree registers itself when
// the registry is drained.
//
// Validation collects every semantic problem before failing, so a single
// compile reports unknown attributes, repeated attributes, root attributes
// and duplicate sibling names together.
package compiler
