// Package burststore persists the detected burst collection.
//
// The artifact is a single JSON file of nested path arrays under the
// project's state directory. It is written once after detection and then
// mutated in place by index-addressed rejection until the user invalidates
// it. Writes go through a temp file and rename so a crash never leaves a
// partial artifact. Concurrent writers are not guarded against.
package burststore
