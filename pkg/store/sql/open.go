package sql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/de-tools/fin-atlas/pkg/store/duckdb"

	_ "github.com/databricks/databricks-sql-go"
	_ "github.com/snowflakedb/gosnowflake"
)

const DriverDuckDB = "duckdb"

// Open connects to a ledger database. DuckDB goes through the local
// connector; "snowflake" and "databricks" use their registered drivers.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	var (
		db  *sql.DB
		err error
	)
	switch driver {
	case DriverDuckDB:
		db, err = duckdb.NewDB(duckdb.Settings{DbPath: dsn})
	case "snowflake", "databricks":
		db, err = sql.Open(driver, dsn)
	default:
		return nil, fmt.Errorf("unsupported driver %q (supported: duckdb, snowflake, databricks)", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	return db, nil
}
