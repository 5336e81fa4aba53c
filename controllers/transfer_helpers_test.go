package controllers

import (
	"testing"

	"github.com/campusride/CampusRide/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransferOperation(t *testing.T) {
	f := newFixture(t)
	f.setBalance(t, f.rider.ID, 500)
	f.setBalance(t, f.driver.ID, 100)

	entry, err := TransferOperation(f.db, f.rider, f.driver, 200, f.platform)
	require.NoError(t, err)

	// 5% fee on 200 is 10, debited from the sender and credited to the
	// platform
	assert.InDelta(t, 290.0, f.balanceOf(t, f.rider.ID), 0.001)
	assert.InDelta(t, 300.0, f.balanceOf(t, f.driver.ID), 0.001)
	assert.InDelta(t, 10.0, f.platformBalance(t), 0.001)

	assert.Equal(t, models.OperationTransfer, entry.OperationType)
	assert.Equal(t, models.TransactionBoth, entry.TransactionType)
	assert.InDelta(t, 200.0, entry.Amount, 0.001)
	assert.InDelta(t, 500.0, entry.SenderBalanceBefore, 0.001)
	assert.InDelta(t, 290.0, entry.SenderBalanceAfter, 0.001)
	assert.InDelta(t, 100.0, entry.ReceiverBalanceBefore, 0.001)
	assert.InDelta(t, 300.0, entry.ReceiverBalanceAfter, 0.001)

	// Money is conserved across the three wallets
	total := f.balanceOf(t, f.rider.ID) + f.balanceOf(t, f.driver.ID) + f.platformBalance(t)
	assert.InDelta(t, 600.0, total, 0.001)

	assert.EqualValues(t, 1, f.notificationCount(t, f.rider.ID))
	assert.EqualValues(t, 1, f.notificationCount(t, f.driver.ID))
}

func TestTransferOperationInsufficientFunds(t *testing.T) {
	f := newFixture(t)
	f.setBalance(t, f.rider.ID, 200)

	// 200 transfer needs 210 with the fee
	_, err := TransferOperation(f.db, f.rider, f.driver, 200, f.platform)
	require.ErrorIs(t, err, ErrInsufficientFunds)

	assert.InDelta(t, 200.0, f.balanceOf(t, f.rider.ID), 0.001)
	assert.InDelta(t, 0.0, f.balanceOf(t, f.driver.ID), 0.001)
}

func TestTransferOperationRejectsSelfTransfer(t *testing.T) {
	f := newFixture(t)
	f.setBalance(t, f.rider.ID, 500)

	_, err := TransferOperation(f.db, f.rider, f.rider, 100, f.platform)
	require.ErrorIs(t, err, ErrSelfTransfer)
}

func TestTransferOperationRejectsNegativeAmount(t *testing.T) {
	f := newFixture(t)

	_, err := TransferOperation(f.db, f.rider, f.driver, -1, f.platform)
	require.ErrorIs(t, err, ErrNegativeAmount)
}
