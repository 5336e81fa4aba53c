package controllers

import (
	"fmt"

	"github.com/campusride/CampusRide/models"
	"gorm.io/gorm"
)

// TransferOperation moves amount from sender to receiver, charging the
// sender a fee of amount * default_transfer rate which is credited entirely
// to the platform wallet.
//
// The wallet writes keep the documented role order: sender debit, receiver
// credit, platform fee credit. Do not change this sequence; together with
// the enclosing transaction it is what keeps an intermediate state where
// money exists in two places from ever being observed.
func TransferOperation(tx *gorm.DB, sender, receiver *models.User, amount float64, platform PlatformAccount) (*models.Transaction, error) {
	if amount < 0 {
		return nil, ErrNegativeAmount
	}
	if sender.ID == receiver.ID {
		return nil, ErrSelfTransfer
	}

	transferPrice, err := resolvePercentagePrice(tx, "", models.DefaultTransferRate)
	if err != nil {
		return nil, err
	}
	fee := transferPrice.Rate * amount

	senderWallet, err := walletForUser(tx, sender.ID)
	if err != nil {
		return nil, err
	}
	receiverWallet, err := walletForUser(tx, receiver.ID)
	if err != nil {
		return nil, err
	}
	platformWallet, err := walletByID(tx, platform.WalletID)
	if err != nil {
		return nil, err
	}

	// Snapshots before any write
	senderBefore := senderWallet.Balance
	receiverBefore := receiverWallet.Balance
	senderAfter := senderBefore - amount - fee
	receiverAfter := receiverBefore + amount

	if senderAfter < 0 {
		return nil, ErrInsufficientFunds
	}

	senderWallet.Balance = senderAfter
	if err := tx.Save(senderWallet).Error; err != nil {
		return nil, err
	}
	receiverWallet.Balance = receiverAfter
	if err := tx.Save(receiverWallet).Error; err != nil {
		return nil, err
	}
	platformWallet.Balance += fee
	if err := tx.Save(platformWallet).Error; err != nil {
		return nil, err
	}

	saveNotification(tx, sender.ID, platform.UserID,
		fmt.Sprintf("Your wallet has been debited with N%.2f, with a transaction charge of N%.2f", amount, fee), iconTransfer)
	saveNotification(tx, receiver.ID, platform.UserID,
		fmt.Sprintf("Your wallet has been credited with N%.2f by %s", amount, sender.FirstName), iconTransfer)

	entry := models.Transaction{
		Detail:                fmt.Sprintf("%s transfered N%.2f to %s with a transaction charge of %.2f", sender.Email, amount, receiver.Email, fee),
		OperationType:         models.OperationTransfer,
		TransactionType:       models.TransactionBoth,
		Amount:                amount,
		SenderBalanceBefore:   senderBefore,
		SenderBalanceAfter:    senderAfter,
		ReceiverBalanceBefore: receiverBefore,
		ReceiverBalanceAfter:  receiverAfter,
		SenderID:              &sender.ID,
		ReceiverID:            &receiver.ID,
		SenderWalletID:        &senderWallet.ID,
		ReceiverWalletID:      &receiverWallet.ID,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return nil, err
	}

	return &entry, nil
}
