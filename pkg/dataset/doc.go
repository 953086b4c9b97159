// Package dataset provides the named org-chart data sets and the
// selection state around them.
//
// Two test data sets are built in (Test-data-1, Test-data-2) plus a
// reserved Custom slot that stays an explicit no-op until user data is
// supplied - via a TOML data directory ([LoadDir]), the HTTP API, or the
// store. A [Selector] owns the current selection as a single immutable
// value that is replaced wholesale on change, so re-selecting a set always
// reproduces its original layout.
package dataset
