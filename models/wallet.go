package models

import (
	"time"
)

// Wallet holds the current balance for exactly one owner, either a user or a
// school. Balances are only ever changed by the settlement engines, and every
// change is paired with one Transaction row recording the before/after
// snapshot taken ahead of the write.
type Wallet struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      *uint     `json:"user_id" gorm:"uniqueIndex"`
	SchoolID    *uint     `json:"school_id" gorm:"uniqueIndex"`
	Balance     float64   `json:"balance" gorm:"default:0"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Operation kinds recorded on ledger entries
const (
	OperationTopUp    = "wallet_top_up"
	OperationTransfer = "transfer"
	OperationRideFare = "ride_fare"
)

// Transaction kinds: whether the entry debits, credits, or does both
const (
	TransactionCredit = "credit"
	TransactionDebit  = "debit"
	TransactionBoth   = "both"
)

// Transaction is one immutable ledger entry. Rows are written once and never
// updated or deleted; there is deliberately no UpdatedAt or soft delete.
// Sender and receiver snapshots are independent: a one-sided operation leaves
// the other side's fields at zero.
type Transaction struct {
	ID                    uint      `gorm:"primaryKey" json:"id"`
	Detail                string    `json:"detail"`
	OperationType         string    `json:"type_of_operation" gorm:"index"`
	TransactionType       string    `json:"type_of_transaction"`
	Amount                float64   `json:"amount"`
	SenderBalanceBefore   float64   `json:"sender_balance_before"`
	SenderBalanceAfter    float64   `json:"sender_balance_after"`
	ReceiverBalanceBefore float64   `json:"receiver_balance_before"`
	ReceiverBalanceAfter  float64   `json:"receiver_balance_after"`
	PaystackDeduction     float64   `json:"paystack_deduction"`
	SenderID              *uint     `json:"sender_id" gorm:"index"`
	ReceiverID            *uint     `json:"receiver_id" gorm:"index"`
	SenderWalletID        *uint     `json:"sender_wallet_id"`
	ReceiverWalletID      *uint     `json:"receiver_wallet_id"`
	CreatedAt             time.Time `json:"created_at" gorm:"index"`
}
