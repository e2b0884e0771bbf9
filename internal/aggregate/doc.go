// Package aggregate implements the campaign metrics aggregation engine:
// period resolution, dimension join, bucket accumulation, label formatting,
// and chronological ordering.
//
// All calendar math is done in UTC so bucket boundaries don't drift between
// machines. Bucket identity is the bucket-start instant (a time.Time), never
// a formatted string, so ordering and cross-year uniqueness fall out of
// instant comparison instead of lexicographic accidents.
//
// Every entry point is a pure function of its inputs; there is no shared
// state between aggregation runs and concurrent runs over different inputs
// are safe.
package aggregate
