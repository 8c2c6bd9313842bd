package tx

import "context"

// Manager brackets multi-statement index writes: the reindex rebuild runs
// its reset and upserts inside one boundary so readers never observe a
// half-rebuilt index.
type Manager interface {
	Within(ctx context.Context, fn func(context.Context) error) error
}

// NoopManager runs the function directly. SQLite serializes writers on its
// own, which is enough for a single-user CLI.
type NoopManager struct{}

func (NoopManager) Within(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}
