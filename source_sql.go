package aclhelper

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// sqlSource runs a query against a SQL database and takes the first
// column of every row as one record, grounded on the reference
// implementation's source_from_sqlite3/source_from_pgsql. A newline
// embedded in a column stays inside that row's record; carriage
// returns are stripped, not preserved.
type sqlSource struct {
	driverName string
	dsn        string
	query      string
}

func newSQLSource(driverName string, fields []string) (*sqlSource, error) {
	if len(fields) < 2 || fields[0] == "" || fields[1] == "" {
		return nil, fmt.Errorf("%s source requires a dsn and a query", driverName)
	}
	return &sqlSource{driverName: driverName, dsn: fields[0], query: fields[1]}, nil
}

func (s *sqlSource) Load() ([]string, error) {
	db, err := sql.Open(s.driverName, s.dsn)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query(s.query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []string
	for rows.Next() {
		var val string
		if err := rows.Scan(&val); err != nil {
			return nil, err
		}
		records = append(records, strings.ReplaceAll(val, "\r", ""))
	}
	return records, rows.Err()
}
