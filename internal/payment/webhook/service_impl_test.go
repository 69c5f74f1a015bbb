package webhook

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/coachably/coachpay/internal/payment/adapters"
	paymentdomain "github.com/coachably/coachpay/internal/payment/domain"
	purchasedomain "github.com/coachably/coachpay/internal/purchase/domain"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAdapter struct {
	verifyErr error
	event     *paymentdomain.PurchaseEvent
	parseErr  error
}

func (a *fakeAdapter) Provider() string { return "stripe" }

func (a *fakeAdapter) Verify(ctx context.Context, payload []byte, headers http.Header) error {
	return a.verifyErr
}

func (a *fakeAdapter) Parse(ctx context.Context, payload []byte) (*paymentdomain.PurchaseEvent, error) {
	if a.parseErr != nil {
		return nil, a.parseErr
	}
	return a.event, nil
}

type fakePurchaseService struct {
	purchases []*purchasedomain.Purchase
	tiers     []*purchasedomain.PaidTierPurchase
}

func (s *fakePurchaseService) Sync(ctx context.Context, incoming *purchasedomain.Purchase) error {
	s.purchases = append(s.purchases, incoming)
	return nil
}

func (s *fakePurchaseService) SyncPaidTier(ctx context.Context, incoming *purchasedomain.PaidTierPurchase) error {
	s.tiers = append(s.tiers, incoming)
	return nil
}

func newTestIngestor(adapter paymentdomain.Adapter) (paymentdomain.Service, *fakePurchaseService) {
	purchaseSvc := &fakePurchaseService{}
	svc := NewService(Params{
		Log:         zap.NewNop(),
		PurchaseSvc: purchaseSvc,
		Adapters:    adapters.NewRegistry(adapter),
	})
	return svc, purchaseSvc
}

func purchaseEvent(contributionID *snowflake.ID) *paymentdomain.PurchaseEvent {
	return &paymentdomain.PurchaseEvent{
		Provider:        "stripe",
		ProviderEventID: "evt_1",
		TransactionID:   "pi_123",
		PurchaseID:      1,
		ContributionID:  contributionID,
		ClientID:        20,
		Amount:          10000,
		Currency:        "USD",
		OccurredAt:      time.Unix(1700000000, 0).UTC(),
	}
}

func TestIngestWebhookSyncsPurchase(t *testing.T) {
	contributionID := snowflake.ID(10)
	svc, purchaseSvc := newTestIngestor(&fakeAdapter{event: purchaseEvent(&contributionID)})

	err := svc.IngestWebhook(context.Background(), "stripe", []byte(`{}`), http.Header{})
	require.NoError(t, err)
	require.Len(t, purchaseSvc.purchases, 1)
	require.Empty(t, purchaseSvc.tiers)

	synced := purchaseSvc.purchases[0]
	require.Equal(t, snowflake.ID(1), synced.ID)
	require.Equal(t, snowflake.ID(20), synced.ClientID)
	require.Len(t, synced.Payments, 1)
	require.Equal(t, "pi_123", synced.Payments[0].TransactionID)
	require.Equal(t, int64(10000), synced.Payments[0].Amount)
}

func TestIngestWebhookSyncsPaidTier(t *testing.T) {
	svc, purchaseSvc := newTestIngestor(&fakeAdapter{event: purchaseEvent(nil)})

	err := svc.IngestWebhook(context.Background(), "stripe", []byte(`{}`), http.Header{})
	require.NoError(t, err)
	require.Empty(t, purchaseSvc.purchases)
	require.Len(t, purchaseSvc.tiers, 1)
}

func TestIngestWebhookIgnoredEventIsNotAnError(t *testing.T) {
	svc, purchaseSvc := newTestIngestor(&fakeAdapter{parseErr: paymentdomain.ErrEventIgnored})

	err := svc.IngestWebhook(context.Background(), "stripe", []byte(`{}`), http.Header{})
	require.NoError(t, err)
	require.Empty(t, purchaseSvc.purchases)
	require.Empty(t, purchaseSvc.tiers)
}

func TestIngestWebhookRejectsBadInput(t *testing.T) {
	svc, _ := newTestIngestor(&fakeAdapter{})

	err := svc.IngestWebhook(context.Background(), "", []byte(`{}`), http.Header{})
	require.ErrorIs(t, err, paymentdomain.ErrInvalidProvider)

	err = svc.IngestWebhook(context.Background(), "square", []byte(`{}`), http.Header{})
	require.ErrorIs(t, err, paymentdomain.ErrProviderNotFound)

	err = svc.IngestWebhook(context.Background(), "stripe", []byte(`not json`), http.Header{})
	require.ErrorIs(t, err, paymentdomain.ErrInvalidPayload)
}

func TestIngestWebhookPropagatesSignatureFailure(t *testing.T) {
	svc, purchaseSvc := newTestIngestor(&fakeAdapter{verifyErr: paymentdomain.ErrInvalidSignature})

	err := svc.IngestWebhook(context.Background(), "stripe", []byte(`{}`), http.Header{})
	require.ErrorIs(t, err, paymentdomain.ErrInvalidSignature)
	require.Empty(t, purchaseSvc.purchases)
}
