package service

import (
	"context"
	"fmt"
	"time"

	"github.com/coachably/coachpay/internal/config"
	"github.com/coachably/coachpay/internal/lock"
	obsmetrics "github.com/coachably/coachpay/internal/observability/metrics"
	purchasedomain "github.com/coachably/coachpay/internal/purchase/domain"
	"github.com/coachably/coachpay/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Locker  lock.Locker
	Cfg     config.Config
	Metrics *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	log     *zap.Logger
	locker  lock.Locker
	metrics *obsmetrics.Metrics

	purchases repository.Repository[purchasedomain.Purchase]
	tiers     repository.Repository[purchasedomain.PaidTierPurchase]

	lockTTL        time.Duration
	acquireTimeout time.Duration
}

func NewService(p Params) purchasedomain.Service {
	return &Service{
		log:     p.Log.Named("purchase.service"),
		locker:  p.Locker,
		metrics: p.Metrics,

		purchases: repository.ProvideStore[purchasedomain.Purchase](p.DB),
		tiers:     repository.ProvideStore[purchasedomain.PaidTierPurchase](p.DB),

		lockTTL:        p.Cfg.PurchaseLockTTL,
		acquireTimeout: p.Cfg.PurchaseLockAcquireTimeout,
	}
}

// Sync applies an incoming purchase update under a per-purchase lease.
// When the persisted record carries a newer UpdateTime the incoming
// write lost a race against an out-of-order event; its header fields are
// discarded but its payments are unioned into the persisted list so no
// payment is ever dropped. Otherwise the incoming record wins wholesale.
func (s *Service) Sync(ctx context.Context, incoming *purchasedomain.Purchase) error {
	if incoming == nil || incoming.ID == 0 {
		return purchasedomain.ErrInvalidPurchase
	}
	if incoming.ClientID == 0 {
		return purchasedomain.ErrInvalidClient
	}

	release, err := s.acquire(ctx, incoming.ID.String())
	if err != nil {
		return err
	}
	defer release()

	persisted, err := s.purchases.GetOne(ctx, &purchasedomain.Purchase{
		ContributionID: incoming.ContributionID,
		ClientID:       incoming.ClientID,
	})
	if err != nil {
		return err
	}

	record := *incoming
	outcome := obsmetrics.SyncOutcomeFirstWrite
	if persisted != nil {
		if persisted.UpdateTime.After(incoming.UpdateTime) {
			// The persisted record is causally newer: keep its header
			// fields, union in the payments this event carries.
			record = *persisted
			record.ID = incoming.ID
			record.Payments = purchasedomain.MergePayments(persisted.Payments, incoming.Payments)
			outcome = obsmetrics.SyncOutcomeMerged
		} else {
			// Header fields are last-writer-wins; payments never regress.
			record.Payments = purchasedomain.MergePayments(incoming.Payments, persisted.Payments)
			outcome = obsmetrics.SyncOutcomeOverwrite
		}
	}

	if err := s.purchases.Save(ctx, &record); err != nil {
		return err
	}

	s.metrics.RecordSync("purchase", outcome)
	s.log.Debug("purchase synced",
		zap.String("purchase_id", incoming.ID.String()),
		zap.String("outcome", outcome),
		zap.Int("payments", len(record.Payments)),
	)
	return nil
}

// SyncPaidTier is Sync for tier purchases, keyed by client alone.
func (s *Service) SyncPaidTier(ctx context.Context, incoming *purchasedomain.PaidTierPurchase) error {
	if incoming == nil || incoming.ID == 0 {
		return purchasedomain.ErrInvalidPurchase
	}
	if incoming.ClientID == 0 {
		return purchasedomain.ErrInvalidClient
	}

	release, err := s.acquire(ctx, incoming.ID.String())
	if err != nil {
		return err
	}
	defer release()

	persisted, err := s.tiers.GetOne(ctx, &purchasedomain.PaidTierPurchase{
		ClientID: incoming.ClientID,
	})
	if err != nil {
		return err
	}

	record := *incoming
	outcome := obsmetrics.SyncOutcomeFirstWrite
	if persisted != nil {
		if persisted.UpdateTime.After(incoming.UpdateTime) {
			record = *persisted
			record.ID = incoming.ID
			record.Payments = purchasedomain.MergePayments(persisted.Payments, incoming.Payments)
			outcome = obsmetrics.SyncOutcomeMerged
		} else {
			record.Payments = purchasedomain.MergePayments(incoming.Payments, persisted.Payments)
			outcome = obsmetrics.SyncOutcomeOverwrite
		}
	}

	if err := s.tiers.Save(ctx, &record); err != nil {
		return err
	}

	s.metrics.RecordSync("paid_tier", outcome)
	return nil
}

func (s *Service) acquire(ctx context.Context, purchaseID string) (func(), error) {
	key := fmt.Sprintf("purchase:sync:%s", purchaseID)

	start := time.Now()
	lease, err := s.locker.Acquire(ctx, key, s.lockTTL, s.acquireTimeout)
	s.metrics.ObserveLockWait(time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("acquire purchase lock %s: %w", key, err)
	}

	return func() {
		if err := s.locker.Release(ctx, lease); err != nil {
			s.log.Warn("failed to release purchase lock",
				zap.String("key", key),
				zap.Error(err),
			)
		}
	}, nil
}
