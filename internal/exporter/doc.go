// Package exporter writes the computed index tables to CSV files for
// downstream analysis.
//
// Output is date-sorted with fixed float formatting; null values (NaN) are
// written as empty cells so spreadsheet tools and columnar importers read
// them as missing rather than zero.
package exporter
