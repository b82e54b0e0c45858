// Package models defines the core domain models for messledger.
//
// # Records
//
// A house ledger is made of four kinds of records:
//   - Member: a person living in the house
//   - Bill: a shared expense (market run, rent, electricity, ...)
//   - Payment: money a member put into the house fund
//   - MealEntry: how many meals a member ate on one day
//
// Records reference members by ID string. A payment or meal entry may outlive
// the member it points to; such dangling references are tolerated and simply
// ignored when per-member totals are computed.
//
// # Dates
//
// Dates are kept as "YYYY-MM-DD" strings rather than time.Time. A malformed
// date read back from a store is not an error: time-filtered views exclude it
// instead of failing the whole computation.
//
// # Meal entries
//
// At most one meal entry exists per (member, day). MealBook enforces this by
// keying entries on MealKey, so writing an entry for an existing key replaces
// the previous count.
package models
