// Package history records batch runs in MySQL through GORM.
//
// Every run stores its roots, outcome and category counts, plus one row per
// report entry. The Store satisfies batch.Recorder; the Handler lists runs
// (GET /history) and returns a single run with its entries
// (GET /history/:id). The feature is only enabled when a database
// connection is available.
package history
