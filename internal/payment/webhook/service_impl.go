package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/coachably/coachpay/internal/observability/metrics"
	"github.com/coachably/coachpay/internal/payment/adapters"
	paymentdomain "github.com/coachably/coachpay/internal/payment/domain"
	purchasedomain "github.com/coachably/coachpay/internal/purchase/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type Params struct {
	fx.In

	Log         *zap.Logger
	PurchaseSvc purchasedomain.Service
	Adapters    *adapters.Registry
	Metrics     *metrics.Metrics `optional:"true"`
}

type Service struct {
	log         *zap.Logger
	purchaseSvc purchasedomain.Service
	adapters    *adapters.Registry
	metrics     *metrics.Metrics
}

func NewService(p Params) paymentdomain.Service {
	return &Service{
		log:         p.Log.Named("payment.webhook"),
		purchaseSvc: p.PurchaseSvc,
		adapters:    p.Adapters,
		metrics:     p.Metrics,
	}
}

// IngestWebhook verifies, parses and applies one webhook delivery. Each
// delivery becomes a single-payment purchase update handed to the
// reconciler, which serializes concurrent deliveries per purchase.
func (s *Service) IngestWebhook(ctx context.Context, provider string, payload []byte, headers http.Header) error {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" {
		return paymentdomain.ErrInvalidProvider
	}
	adapter, ok := s.adapters.Get(provider)
	if !ok {
		return paymentdomain.ErrProviderNotFound
	}
	if !json.Valid(payload) {
		return paymentdomain.ErrInvalidPayload
	}

	if err := adapter.Verify(ctx, payload, headers); err != nil {
		return err
	}

	event, err := adapter.Parse(ctx, payload)
	if err != nil {
		if errors.Is(err, paymentdomain.ErrEventIgnored) {
			s.log.Debug("webhook event ignored", zap.String("provider", provider))
			return nil
		}
		return err
	}

	s.metrics.RecordWebhookEvent(event.Provider, "purchase_payment")

	payment := purchasedomain.PaymentRecord{
		TransactionID: event.TransactionID,
		Amount:        event.Amount,
		Timestamp:     event.OccurredAt,
	}

	if event.IsPaidTier() {
		return s.purchaseSvc.SyncPaidTier(ctx, &purchasedomain.PaidTierPurchase{
			ID:         event.PurchaseID,
			ClientID:   event.ClientID,
			UpdateTime: event.OccurredAt,
			Payments:   datatypes.NewJSONSlice([]purchasedomain.PaymentRecord{payment}),
		})
	}

	return s.purchaseSvc.Sync(ctx, &purchasedomain.Purchase{
		ID:             event.PurchaseID,
		ContributionID: event.ContributionID,
		ClientID:       event.ClientID,
		UpdateTime:     event.OccurredAt,
		Payments:       datatypes.NewJSONSlice([]purchasedomain.PaymentRecord{payment}),
	})
}
