// Package insights implements the aggregation read path: load the campaign
// dimension and raw metric events from a repository, join, fold into
// time-bucketed rows, and serve the ordered result.
//
// The service layer owns caching and request-token bookkeeping. It depends
// on the Repository interface defined in this package and should never
// import from api/.
//
// Repository implementations live in repository/postgres/ (database-backed)
// and dataset/ (static JSON file or S3 object).
package insights
