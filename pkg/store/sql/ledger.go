package sql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/de-tools/fin-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// LedgerStore reads financial records with an arbitrary query. Each result
// column becomes a table column, in select order.
type LedgerStore interface {
	Load(ctx context.Context, query string, args ...any) (domain.Table, error)
}

type ledgerStore struct {
	db *sql.DB
}

func NewLedgerStore(db *sql.DB) (LedgerStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &ledgerStore{db: db}, nil
}

func (s *ledgerStore) Load(ctx context.Context, query string, args ...any) (domain.Table, error) {
	logger := zerolog.Ctx(ctx)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return domain.Table{}, fmt.Errorf("ledger query failed: %w", err)
	}
	defer func(rows *sql.Rows) {
		err := rows.Close()
		if err != nil {
			logger.Warn().Err(err).Msg("failed to close ledger query rows")
		}
	}(rows)

	columns, err := rows.Columns()
	if err != nil {
		return domain.Table{}, fmt.Errorf("read columns: %w", err)
	}

	table := domain.Table{Columns: columns}
	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return domain.Table{}, fmt.Errorf("scan ledger row: %w", err)
		}
		rec := make(domain.Record, len(columns))
		for i, col := range columns {
			rec[col] = cellValue(values[i])
		}
		table.Rows = append(table.Rows, rec)
	}
	if err := rows.Err(); err != nil {
		return domain.Table{}, fmt.Errorf("iterate ledger rows: %w", err)
	}

	logger.Debug().Int("rows", table.Len()).Msg("loaded ledger from query")
	return table, nil
}

// cellValue converts driver values into the scalar kinds a Record holds.
func cellValue(v any) any {
	switch t := v.(type) {
	case []byte:
		return string(t)
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		return t
	}
}
