// Package sync keeps the optimistic local wizard session aligned with the
// authoritative session backend.
//
// Every local transition that has a remote effect enqueues an explicit
// Task carrying the session version it was computed against. Tasks for a
// session are sent strictly one at a time; transient backend failures are
// retried with exponential backoff, and a divergence acknowledged by the
// backend triggers reconciliation: the authoritative state is adopted and
// the operator's open item draft is preserved where possible.
package sync
