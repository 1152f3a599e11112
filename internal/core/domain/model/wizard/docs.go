// Package wizard models the order wizard session: the aggregate root that
// coordinates the outer stage machine, the lifecycle status, the committed
// order items with their composed prices, the order-level adjustments and
// the nested item draft sub-flow.
//
// The session is optimistic local state. Every accepted transition bumps
// its version; the synchronization layer compares versions against the
// authoritative backend copy and adopts the backend state when they
// diverge, preserving the open draft where possible.
package wizard
