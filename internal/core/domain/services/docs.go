// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the order intake system. It implements
// business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - PriceComposer: A domain service composing an item price from the price
//     list entry, the selected modifiers and the order-level adjustments
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
