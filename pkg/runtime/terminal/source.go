package terminal

import (
	"context"

	"github.com/de-tools/fin-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/fin-atlas/pkg/services/config"
	"github.com/de-tools/fin-atlas/pkg/services/ingest"
	s3store "github.com/de-tools/fin-atlas/pkg/store/s3"
	sqlstore "github.com/de-tools/fin-atlas/pkg/store/sql"
)

func noop() {}

// OpenSource resolves a source spec into a loader: a SQL query when a driver
// is set, an S3 object for s3:// locations, otherwise a local file.
func OpenSource(decoders ingest.Registry, cfg config.AppConfig) commands.LoaderFunc {
	return func(ctx context.Context, spec commands.SourceSpec) (ingest.Loader, func(), error) {
		switch {
		case spec.Driver != "":
			db, err := sqlstore.Open(ctx, spec.Driver, spec.DSN)
			if err != nil {
				return nil, nil, err
			}
			store, err := sqlstore.NewLedgerStore(db)
			if err != nil {
				_ = db.Close()
				return nil, nil, err
			}
			return ingest.QueryLoader{Store: store, Query: spec.Query}, func() { _ = db.Close() }, nil

		case ingest.IsObjectURI(spec.Location):
			fetcher, err := s3store.NewDefaultFetcher(ctx, cfg.AWSRegion, cfg.MaxUploadBytes())
			if err != nil {
				return nil, nil, err
			}
			return ingest.ObjectLoader{URI: spec.Location, Fetcher: fetcher, Registry: decoders}, noop, nil

		default:
			return ingest.FileLoader{Path: spec.Location, Registry: decoders}, noop, nil
		}
	}
}

