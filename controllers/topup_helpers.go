package controllers

import (
	"fmt"

	"github.com/campusride/CampusRide/models"
	"gorm.io/gorm"
)

// LoadWalletOperation credits a verified top-up to the payer's wallet and
// writes the ledger entry. The Paystack deduction is recorded on the entry
// for the audit trail but is not debited from any wallet; that leakage is
// the provider's fee, outside the platform.
//
// Callers must have already verified the payment reference and validated the
// amount; this function performs the writes inside the supplied transaction.
func LoadWalletOperation(tx *gorm.DB, payer *models.User, amount float64, platform PlatformAccount) (*models.Transaction, error) {
	if amount < 0 {
		return nil, ErrNegativeAmount
	}

	wallet, err := walletForUser(tx, payer.ID)
	if err != nil {
		return nil, err
	}

	// Snapshot before any write
	balanceBefore := wallet.Balance
	balanceAfter := balanceBefore + amount
	deduction := PaystackDeductionAmount(amount)

	wallet.Balance = balanceAfter
	if err := tx.Save(wallet).Error; err != nil {
		return nil, err
	}

	saveNotification(tx, payer.ID, platform.UserID,
		fmt.Sprintf("Your wallet has been credited with N%.2f", amount), iconTopUp)

	entry := models.Transaction{
		Detail:                fmt.Sprintf("%s's wallet has been credited with %.2f", payer.FirstName, amount),
		OperationType:         models.OperationTopUp,
		TransactionType:       models.TransactionCredit,
		Amount:                amount,
		ReceiverBalanceBefore: balanceBefore,
		ReceiverBalanceAfter:  balanceAfter,
		PaystackDeduction:     deduction,
		ReceiverID:            &payer.ID,
		ReceiverWalletID:      &wallet.ID,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return nil, err
	}

	return &entry, nil
}
