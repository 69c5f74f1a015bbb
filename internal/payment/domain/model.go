package domain

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
)

// PurchaseEvent is the canonical purchase update parsed from a
// processor webhook. ContributionID is nil for paid-tier purchases.
type PurchaseEvent struct {
	Provider        string
	ProviderEventID string
	TransactionID   string
	PurchaseID      snowflake.ID
	ContributionID  *snowflake.ID
	ClientID        snowflake.ID
	Amount          int64
	Currency        string
	OccurredAt      time.Time
	RawPayload      []byte
}

// IsPaidTier reports whether the event targets the client's tier
// purchase rather than a contribution purchase.
func (e *PurchaseEvent) IsPaidTier() bool {
	return e.ContributionID == nil
}

// Adapter verifies and parses one processor's webhook payloads.
type Adapter interface {
	Provider() string
	Verify(ctx context.Context, payload []byte, headers http.Header) error
	Parse(ctx context.Context, payload []byte) (*PurchaseEvent, error)
}

// Service ingests raw webhook deliveries.
type Service interface {
	IngestWebhook(ctx context.Context, provider string, payload []byte, headers http.Header) error
}

var (
	ErrInvalidProvider    = errors.New("invalid_provider")
	ErrProviderNotFound   = errors.New("provider_not_found")
	ErrInvalidPayload     = errors.New("invalid_payload")
	ErrInvalidSignature   = errors.New("invalid_signature")
	ErrInvalidEvent       = errors.New("invalid_event")
	ErrInvalidAmount      = errors.New("invalid_amount")
	ErrInvalidClient      = errors.New("invalid_client")
	ErrEventIgnored       = errors.New("event_ignored")
	ErrMissingTransaction = errors.New("missing_transaction_id")
)
