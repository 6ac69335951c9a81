// This package compiles flat, connector-tagged filter declarations (as they
// arrive in a request payload) into PostgreSQL WHERE clauses.
//
// Each declaration is turned into a typed Condition using the declared column
// types, the list is regrouped into an AND/OR Expression tree and the tree is
// rendered to SQL text. Values are inlined with quote escaping, the output is
// not parameterized.
package filter
