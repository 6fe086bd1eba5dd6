package services

import "context"

// Transactor runs fn inside a storage transaction. Implementations must be
// re-entrant: when the incoming context already carries a transaction, fn
// joins it instead of opening a new one, so services can compose (a deposit
// approval wrapping a ledger credit commits or aborts as one unit).
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
