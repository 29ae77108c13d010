// Package events carries degradation events between components.
//
// Some failures in the catalog are recovered silently: an unparseable
// modified date becomes the current time and a thumbnail that cannot be
// cached becomes null. The components that make those substitutions emit a
// DegradationEvent so the substitution is observable without changing the
// response contract.
//
// The primary components are:
// - DegradationEvent: describes one substitution
// - EventHandler: interface for components that consume events
// - EventEmitter: interface for components that publish events
package events
