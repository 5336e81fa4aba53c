package controllers

import (
	"testing"

	"github.com/campusride/CampusRide/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRideFareOperationSplit(t *testing.T) {
	f := newFixture(t)
	f.setBalance(t, f.rider.ID, 1500)

	entry, err := RideFareOperation(f.db, f.rider, f.driver, 1000, f.school, f.carOwner, f.platform)
	require.NoError(t, err)

	// 40% driver, 10% school, 10% car owner, remainder to the platform
	assert.InDelta(t, 500.0, f.balanceOf(t, f.rider.ID), 0.001)
	assert.InDelta(t, 400.0, f.balanceOf(t, f.driver.ID), 0.001)
	assert.InDelta(t, 100.0, f.schoolBalance(t), 0.001)
	assert.InDelta(t, 100.0, f.balanceOf(t, f.carOwner.ID), 0.001)
	assert.InDelta(t, 400.0, f.platformBalance(t), 0.001)

	// The four shares together equal the fare exactly
	credited := f.balanceOf(t, f.driver.ID) + f.schoolBalance(t) +
		f.balanceOf(t, f.carOwner.ID) + f.platformBalance(t)
	assert.InDelta(t, 1000.0, credited, 0.001)

	assert.Equal(t, models.OperationRideFare, entry.OperationType)
	assert.InDelta(t, 1500.0, entry.SenderBalanceBefore, 0.001)
	assert.InDelta(t, 500.0, entry.SenderBalanceAfter, 0.001)
	assert.InDelta(t, 0.0, entry.ReceiverBalanceBefore, 0.001)
	assert.InDelta(t, 400.0, entry.ReceiverBalanceAfter, 0.001)
}

func TestRideFareOperationInsufficientFunds(t *testing.T) {
	f := newFixture(t)
	f.setBalance(t, f.rider.ID, 999)

	_, err := RideFareOperation(f.db, f.rider, f.driver, 1000, f.school, f.carOwner, f.platform)
	require.ErrorIs(t, err, ErrInsufficientFunds)

	// No wallet moved
	assert.InDelta(t, 999.0, f.balanceOf(t, f.rider.ID), 0.001)
	assert.InDelta(t, 0.0, f.balanceOf(t, f.driver.ID), 0.001)
	assert.InDelta(t, 0.0, f.platformBalance(t), 0.001)
}

func TestRideFareOperationMissingRates(t *testing.T) {
	f := newFixture(t)
	f.setBalance(t, f.rider.ID, 1500)
	require.NoError(t, f.db.Where("title = ?", models.DefaultDriverRate).
		Delete(&models.PercentagePrice{}).Error)

	_, err := RideFareOperation(f.db, f.rider, f.driver, 1000, f.school, f.carOwner, f.platform)
	require.ErrorIs(t, err, ErrPriceNotConfigured)
}

func TestRideFareOperationSchoolSpecificRate(t *testing.T) {
	f := newFixture(t)
	f.setBalance(t, f.rider.ID, 1000)
	// A rate registered under the school's email overrides the default
	seedRate(t, f.db, f.school.Email, 0.20)

	_, err := RideFareOperation(f.db, f.rider, f.driver, 1000, f.school, f.carOwner, f.platform)
	require.NoError(t, err)

	assert.InDelta(t, 200.0, f.schoolBalance(t), 0.001)
	assert.InDelta(t, 400.0, f.balanceOf(t, f.driver.ID), 0.001)
	assert.InDelta(t, 300.0, f.platformBalance(t), 0.001)
}

func TestFreeTokenRideOperation(t *testing.T) {
	f := newFixture(t)
	f.setBalance(t, f.rider.ID, 50)
	f.setBalance(t, f.driver.ID, 75)

	token := models.FreeRideToken{
		Token:  generateFreeRideToken(),
		Kind:   models.FreeRideKindRide,
		Active: true,
		UserID: f.rider.ID,
	}
	require.NoError(t, f.db.Create(&token).Error)

	entry, err := FreeTokenRideOperation(f.db, f.rider, f.driver, token.Token, f.platform)
	require.NoError(t, err)

	// No money moves on a free ride
	assert.InDelta(t, 50.0, f.balanceOf(t, f.rider.ID), 0.001)
	assert.InDelta(t, 75.0, f.balanceOf(t, f.driver.ID), 0.001)
	assert.InDelta(t, 0.0, entry.Amount, 0.001)
	assert.InDelta(t, entry.SenderBalanceBefore, entry.SenderBalanceAfter, 0.001)
	assert.InDelta(t, entry.ReceiverBalanceBefore, entry.ReceiverBalanceAfter, 0.001)

	// The token is spent
	var spent models.FreeRideToken
	require.NoError(t, f.db.First(&spent, token.ID).Error)
	assert.False(t, spent.Active)
}

func TestFreeTokenRideOperationDoubleSpend(t *testing.T) {
	f := newFixture(t)

	token := models.FreeRideToken{
		Token:  generateFreeRideToken(),
		Kind:   models.FreeRideKindRide,
		Active: true,
		UserID: f.rider.ID,
	}
	require.NoError(t, f.db.Create(&token).Error)

	_, err := FreeTokenRideOperation(f.db, f.rider, f.driver, token.Token, f.platform)
	require.NoError(t, err)

	_, err = FreeTokenRideOperation(f.db, f.rider, f.driver, token.Token, f.platform)
	require.ErrorIs(t, err, ErrTokenUsed)

	// The flag never flips back
	var spent models.FreeRideToken
	require.NoError(t, f.db.First(&spent, token.ID).Error)
	assert.False(t, spent.Active)
}

func TestFreeTokenRideOperationUnknownToken(t *testing.T) {
	f := newFixture(t)

	_, err := FreeTokenRideOperation(f.db, f.rider, f.driver, "no-such-token", f.platform)
	require.ErrorIs(t, err, ErrTokenNotFound)
}
