package domain

import "context"

// Service reconciles concurrent, possibly out-of-order purchase updates
// into the persisted ledger without losing or duplicating payments.
type Service interface {
	Sync(ctx context.Context, incoming *Purchase) error
	SyncPaidTier(ctx context.Context, incoming *PaidTierPurchase) error
}
