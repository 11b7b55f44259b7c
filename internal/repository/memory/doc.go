// Package memory provides in-process implementations of the repositories.
// They back the "memory" store driver for local runs and the service and
// handler tests. Each repository guards its own data with a mutex, so single
// operations (including IncrementPoints) are atomic while compound
// check-then-write sequences in callers are not.
package memory
