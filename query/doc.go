// Package query assembles the SQL tail of a listing query: the WHERE clause
// compiled by the filter package, followed by ORDER BY and LIMIT/OFFSET.
package query
