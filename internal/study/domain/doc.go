// Package domain holds the progress store data model: the user profile,
// per-domain progress, settings, the active study session, and the snapshot
// aggregate, together with the pure helpers the transition engine composes.
//
// Values are immutable per update: helpers take a value, return an updated
// copy, and never mutate shared state.
package domain
