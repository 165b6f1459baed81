package source

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/microsoft/go-mssqldb"
	_ "modernc.org/sqlite"
)

// Driver names accepted by [Query].
const (
	DriverSQLite    = "sqlite"
	DriverSQLServer = "sqlserver"
	DriverPostgres  = "postgres"
)

// Drivers returns the supported driver names.
func Drivers() []string {
	return []string{DriverSQLite, DriverSQLServer, DriverPostgres}
}

// Query runs query against the database named by driver and dsn and
// returns one map record per row. Postgres goes through a pgx pool; the
// others through database/sql.
func Query(ctx context.Context, driver, dsn, query string, args ...any) (*Set, error) {
	switch driver {
	case DriverPostgres:
		pool, err := NewPool(ctx, dsn)
		if err != nil {
			return nil, err
		}
		defer pool.Close()
		return QueryPostgres(ctx, pool, query, args...)
	case DriverSQLite, DriverSQLServer:
		db, err := OpenSQL(ctx, driver, dsn)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return QuerySQL(ctx, db, query, args...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
}

// OpenSQL opens and pings a database/sql handle for a sqlite or sqlserver
// DSN.
func OpenSQL(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	if driver != DriverSQLite && driver != DriverSQLServer {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", driver, err)
	}
	if driver == DriverSQLite {
		// In-memory databases exist per connection.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging %s: %w", driver, err)
	}
	return db, nil
}

// QuerySQL runs query on db and returns one map record per row, keyed by
// column name. []byte values become strings.
func QuerySQL(ctx context.Context, db *sql.DB, query string, args ...any) (*Set, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("running query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading columns: %w", err)
	}

	set := &Set{Columns: cols}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		set.Records = append(set.Records, rowRecord(cols, values))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}
	return set, nil
}

func rowRecord(cols []string, values []any) map[string]any {
	rec := make(map[string]any, len(cols))
	for i, c := range cols {
		v := values[i]
		if b, ok := v.([]byte); ok {
			v = string(b)
		}
		rec[c] = v
	}
	return rec
}
