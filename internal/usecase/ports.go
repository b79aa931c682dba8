package usecase

import (
	"context"

	"nostrcal"
)

// RelayGateway encapsulates record fetching from the external store.
type RelayGateway interface {
	Fetch(ctx context.Context, filter nostrcal.Filter) ([]nostrcal.Record, error)
}

// RecordCache is the best-effort local mirror. Failures are swallowed by
// callers and never abort resolution.
type RecordCache interface {
	Put(ctx context.Context, rec nostrcal.Record) error
	GetAll(ctx context.Context) ([]nostrcal.Record, error)
}
