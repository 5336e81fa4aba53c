package controllers

import (
	"testing"

	"github.com/campusride/CampusRide/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaystackDeductionAmount(t *testing.T) {
	assert.InDelta(t, 30.0, PaystackDeductionAmount(2000), 0.001)
	assert.InDelta(t, 145.0, PaystackDeductionAmount(3000), 0.001)
	assert.InDelta(t, 137.5, PaystackDeductionAmount(2500), 0.001)
	assert.InDelta(t, 0.0, PaystackDeductionAmount(0), 0.001)
}

func TestLoadWalletOperation(t *testing.T) {
	f := newFixture(t)
	f.setBalance(t, f.rider.ID, 100)

	entry, err := LoadWalletOperation(f.db, f.rider, 2000, f.platform)
	require.NoError(t, err)

	assert.InDelta(t, 2100.0, f.balanceOf(t, f.rider.ID), 0.001)

	assert.Equal(t, models.OperationTopUp, entry.OperationType)
	assert.Equal(t, models.TransactionCredit, entry.TransactionType)
	assert.InDelta(t, 2000.0, entry.Amount, 0.001)
	assert.InDelta(t, 100.0, entry.ReceiverBalanceBefore, 0.001)
	assert.InDelta(t, 2100.0, entry.ReceiverBalanceAfter, 0.001)
	assert.InDelta(t, 30.0, entry.PaystackDeduction, 0.001)
	require.NotNil(t, entry.ReceiverID)
	assert.Equal(t, f.rider.ID, *entry.ReceiverID)
	assert.Nil(t, entry.SenderID)

	assert.EqualValues(t, 1, f.notificationCount(t, f.rider.ID))
}

func TestLoadWalletOperationRejectsNegativeAmount(t *testing.T) {
	f := newFixture(t)
	f.setBalance(t, f.rider.ID, 100)

	_, err := LoadWalletOperation(f.db, f.rider, -50, f.platform)
	require.ErrorIs(t, err, ErrNegativeAmount)

	// Nothing moved, nothing logged
	assert.InDelta(t, 100.0, f.balanceOf(t, f.rider.ID), 0.001)
	var count int64
	require.NoError(t, f.db.Model(&models.Transaction{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
