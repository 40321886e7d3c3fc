package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const defaultThreads = 4

type Settings struct {
	// DbPath is a database file or ":memory:"
	DbPath string
	// Threads caps DuckDB worker threads (default: 4)
	Threads int
	// BootQueries run on every new connection, e.g. "INSTALL httpfs; LOAD httpfs;"
	BootQueries []string
}

func NewDB(settings Settings) (*sql.DB, error) {
	path := settings.DbPath
	if path == "" {
		path = ":memory:"
	}
	threads := settings.Threads
	if threads <= 0 {
		threads = defaultThreads
	}

	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=%d", path, threads), func(exec driver.ExecerContext) error {
		bootQueries := append([]string{}, settings.BootQueries...)

		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return fmt.Errorf("boot query failed: %w", err)
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
