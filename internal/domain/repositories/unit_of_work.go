package repositories

import (
	"context"
)

// UnitOfWork defines the interface for atomic operations
type UnitOfWork interface {
	// Do executes the given function within a transaction scope. Every
	// repository call made with the context it passes joins the same
	// transaction; an error rolls everything back.
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
