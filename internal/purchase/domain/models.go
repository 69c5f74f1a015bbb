package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// PaymentRecord is one processor payment applied to a purchase.
// TransactionID values are unique within a purchase's payment sequence.
type PaymentRecord struct {
	TransactionID string    `json:"transaction_id"`
	Amount        int64     `json:"amount"`
	Timestamp     time.Time `json:"timestamp"`
}

// Purchase is the persisted ledger record for a contribution purchase.
// Identity for reconciliation lookup is (ContributionID, ClientID).
type Purchase struct {
	ID             snowflake.ID                       `json:"id" gorm:"primaryKey"`
	ContributionID *snowflake.ID                      `json:"contribution_id,omitempty" gorm:"index"`
	ClientID       snowflake.ID                       `json:"client_id" gorm:"not null;index"`
	UpdateTime     time.Time                          `json:"update_time" gorm:"not null"`
	Payments       datatypes.JSONSlice[PaymentRecord] `json:"payments" gorm:"type:jsonb"`
}

func (Purchase) TableName() string { return "purchases" }

// PaidTierPurchase is structurally a Purchase without a contribution;
// its reconciliation identity is the client alone.
type PaidTierPurchase struct {
	ID         snowflake.ID                       `json:"id" gorm:"primaryKey"`
	ClientID   snowflake.ID                       `json:"client_id" gorm:"not null;index"`
	UpdateTime time.Time                          `json:"update_time" gorm:"not null"`
	Payments   datatypes.JSONSlice[PaymentRecord] `json:"payments" gorm:"type:jsonb"`
}

func (PaidTierPurchase) TableName() string { return "paid_tier_purchases" }

var (
	ErrInvalidPurchase = errors.New("invalid_purchase")
	ErrInvalidClient   = errors.New("invalid_client")
)

// MergePayments unions base with the records of incoming whose
// transaction id is not already present, preserving base's order.
func MergePayments(base, incoming []PaymentRecord) []PaymentRecord {
	seen := make(map[string]struct{}, len(base))
	for _, payment := range base {
		seen[payment.TransactionID] = struct{}{}
	}

	merged := make([]PaymentRecord, 0, len(base)+len(incoming))
	merged = append(merged, base...)
	for _, payment := range incoming {
		if _, ok := seen[payment.TransactionID]; ok {
			continue
		}
		seen[payment.TransactionID] = struct{}{}
		merged = append(merged, payment)
	}
	return merged
}
