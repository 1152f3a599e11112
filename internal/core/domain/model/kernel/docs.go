// Package kernel contains the shared value objects of the order wizard
// domain: identifiers (UUID), monetary amounts in integer minor units
// (Money) and item quantities (Quantity with UnitOfMeasure).
//
// All kernel types are immutable value objects constructed through factory
// functions that enforce their invariants; zero values fail validation where
// a zero value would be meaningless.
package kernel
