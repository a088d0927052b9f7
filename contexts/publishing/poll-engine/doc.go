// Package pollengine implements the poll voting core inside the publishing
// context.
//
// The module owns open/closed window evaluation, ballot toggling under the
// per-poll choice limit, and tally computation. The ballot decision itself
// is a pure domain function; adapters supply the per-post critical section
// that makes the count-then-mutate sequence safe under concurrent requests.
package pollengine
