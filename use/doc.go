// Package use makes "acquire, use exactly once, release" a single call.
// The executors take ownership of a resource, run a caller-supplied
// operation against it, and guarantee the resource's release runs exactly
// once immediately afterward, on every exit path.
package use
