// Package app is the reference host. It owns the schedules, resources,
// events and type registry that registration entries mutate, builds its
// plugins once, and then advances the world one tick at a time.
//
// Lifecycle: New, AddPlugins, Build, then Tick or Run. Startup runs once
// before the first Update.
package app
