// Package priority converts categorical severity/impact/effort ratings into
// an objective 0-100 priority score with a ranked label.
//
// Scoring is a fixed weight table: severity contributes up to 40 points,
// impact up to 40, and effort subtracts up to 20 as an implementation-cost
// penalty. Labels are assigned at the 80/65/45 thresholds (STOP-SHIP, HIGH,
// MEDIUM, LOW) and the same thresholds drive severity grouping, so a score
// always lands in the same bucket everywhere it is displayed.
//
// All inputs are case-insensitive. An unrecognized category value fails with
// an *InvalidCategoryError naming the offending field; no partial result is
// produced.
package priority
