package controllers

import (
	"fmt"

	"github.com/campusride/CampusRide/models"
	"gorm.io/gorm"
)

// RideFareOperation settles a ride fare from the paying rider (sender) to
// the driver (receiver), splitting the amount between driver, school, car
// owner and the platform.
//
// The three configured shares are taken from a rate snapshot resolved before
// any write; the platform receives the exact remainder, so the four shares
// always sum to the fare with no rounding leakage onto any other party.
// Wallet write order is fixed: platform, school, car owner, driver, rider.
func RideFareOperation(tx *gorm.DB, sender, receiver *models.User, amount float64,
	school *models.School, carOwner *models.User, platform PlatformAccount) (*models.Transaction, error) {

	if amount < 0 {
		return nil, ErrNegativeAmount
	}

	rates, err := resolveFareRates(tx, school.Email, carOwner.Email)
	if err != nil {
		return nil, err
	}

	senderWallet, err := walletForUser(tx, sender.ID)
	if err != nil {
		return nil, err
	}
	receiverWallet, err := walletForUser(tx, receiver.ID)
	if err != nil {
		return nil, err
	}
	schoolWallet, err := walletForSchool(tx, school.ID)
	if err != nil {
		return nil, err
	}
	carOwnerWallet, err := walletForUser(tx, carOwner.ID)
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
	senderAfter := senderBefore - amount
	if senderAfter < 0 {
		return nil, ErrInsufficientFunds
	}

	driverShare := rates.Driver * amount
	schoolShare := rates.School * amount
	carOwnerShare := rates.CarOwner * amount
	platformShare := amount - (driverShare + schoolShare + carOwnerShare)
	receiverAfter := receiverBefore + driverShare

	platformWallet.Balance += platformShare
	if err := tx.Save(platformWallet).Error; err != nil {
		return nil, err
	}
	schoolWallet.Balance += schoolShare
	if err := tx.Save(schoolWallet).Error; err != nil {
		return nil, err
	}
	carOwnerWallet.Balance += carOwnerShare
	if err := tx.Save(carOwnerWallet).Error; err != nil {
		return nil, err
	}
	receiverWallet.Balance = receiverAfter
	if err := tx.Save(receiverWallet).Error; err != nil {
		return nil, err
	}
	senderWallet.Balance = senderAfter
	if err := tx.Save(senderWallet).Error; err != nil {
		return nil, err
	}

	saveNotification(tx, sender.ID, platform.UserID,
		fmt.Sprintf("Your wallet has been debited with N%.2f for your ride fare with %s", amount, receiver.FirstName), iconRideFare)
	saveNotification(tx, receiver.ID, platform.UserID,
		fmt.Sprintf("Your wallet has been credited with N%.2f by %s", driverShare, sender.FirstName), iconRideFare)

	entry := models.Transaction{
		Detail:                fmt.Sprintf("%s paid N%.2f ride fare to %s", sender.Email, amount, receiver.Email),
		OperationType:         models.OperationRideFare,
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

// FreeTokenRideOperation settles a ride fare against a free-ride token. The
// token must exist and still be active; it is flipped inactive exactly once
// and the fare is recorded as a zero-amount ledger entry with no wallet
// writes, so before and after balances match on both sides.
func FreeTokenRideOperation(tx *gorm.DB, sender, receiver *models.User, token string, platform PlatformAccount) (*models.Transaction, error) {
	var freeRide models.FreeRideToken
	if err := lockForUpdate(tx).Where("token = ?", token).First(&freeRide).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	if !freeRide.Active {
		return nil, ErrTokenUsed
	}

	// One-way flip; the guard keeps a concurrent redemption from passing
	result := tx.Model(&models.FreeRideToken{}).
		Where("id = ? AND active = ?", freeRide.ID, true).
		Update("active", false)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrTokenUsed
	}

	senderWallet, err := walletForUser(tx, sender.ID)
	if err != nil {
		return nil, err
	}
	receiverWallet, err := walletForUser(tx, receiver.ID)
	if err != nil {
		return nil, err
	}

	saveNotification(tx, sender.ID, platform.UserID,
		fmt.Sprintf("Your transaction costs N0, your free token %s was used", token), iconRideFare)
	saveNotification(tx, receiver.ID, platform.UserID,
		fmt.Sprintf("Your transaction with %s was a free ride", sender.FirstName), iconRideFare)

	entry := models.Transaction{
		Detail:                fmt.Sprintf("Free ride token %s was used for this ride transaction", token),
		OperationType:         models.OperationRideFare,
		TransactionType:       models.TransactionBoth,
		Amount:                0,
		SenderBalanceBefore:   senderWallet.Balance,
		SenderBalanceAfter:    senderWallet.Balance,
		ReceiverBalanceBefore: receiverWallet.Balance,
		ReceiverBalanceAfter:  receiverWallet.Balance,
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
