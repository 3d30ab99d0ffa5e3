package repositories

import (
	"strings"

	"github.com/Masterminds/squirrel"
)

// rowScanner is satisfied by pgx.Row and pgx.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// psql builds PostgreSQL-flavoured statements
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}
