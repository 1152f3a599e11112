// Package pricing implements the price composition engine: a pure,
// auditable calculation that turns an item configuration, a set of declared
// price modifiers and order-level adjustments into an itemized result.
//
// The calculation follows a fixed step order, each step recorded in the
// result's breakdown so any total is reproducible from its inputs:
//
//  1. Base price resolution by color variant (black/color prices fall back
//     to the base price when absent).
//  2. Base total = unit price x quantity.
//  3. General modifiers, in declared sort order.
//  4. Category-specific modifiers (textile or leather), in declared sort order.
//  5. Subtotal.
//  6. Urgency surcharge on the subtotal.
//  7. Discount on subtotal plus urgency, unless the category is
//     non-discountable; capped per discount type.
//  8. Final total, floored at zero.
//
// Every modifier amount is computed against the running subtotal as
// accumulated so far, so declared order is significant. All arithmetic is
// integer minor units with round-half-up at every step.
//
// The engine never mutates its inputs and holds no state: it is safe to call
// repeatedly, e.g. for a live preview on every form change.
package pricing
