// Package sqlcheck parses generated SQL with the PostgreSQL parser to make
// sure it is valid and holds exactly one statement.
package sqlcheck

import (
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
	pg_query "github.com/pganalyze/pg_query_go/v5"
)

// probe is the statement fragments are appended to.
const probe = "SELECT * FROM filter_probe"

// Fragment checks a clause tail as produced by the filter and query packages
// (" WHERE ...", " ORDER BY ...", " LIMIT ..." or "").
func Fragment(fragment string) error {
	if err := Statement(probe + fragment); err != nil {
		return errors.Wrapf(err, "invalid fragment %q", fragment)
	}
	return nil
}

// Statement checks that sql is a single valid statement without comments
// smuggled into it.
func Statement(sql string) error {
	tree, err := pg_query.ParseToJSON(sql)
	if err != nil {
		return errors.Wrap(err, "parse")
	}

	var q struct {
		Stmts []json.RawMessage `json:"stmts"`
	}
	if err := json.Unmarshal([]byte(tree), &q); err != nil {
		return errors.Wrap(err, "decode parse tree")
	}
	if len(q.Stmts) != 1 {
		return errors.Newf("expected 1 statement, got %d", len(q.Stmts))
	}
	if strings.Contains(tree, "CommentStmt") {
		return errors.New("comment statement found")
	}
	return nil
}
