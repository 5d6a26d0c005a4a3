// Package declare is the declaration surface modules use from their init
// functions. Each call turns a declaration into registry entries; nothing
// touches the host until the registry is drained.
//
//	func init() {
//		declare.Init[Score](declare.Resource, declare.Reflectable)
//		declare.Schedule(`Update([run_every(1.5s)] Test(First, Second, Third))`)
//		declare.System("Update::Test::First", first)
//	}
package declare
