// Package export renders corpora and query results for human and
// spreadsheet consumption.
package export
