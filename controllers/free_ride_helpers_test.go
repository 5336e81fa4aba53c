package controllers

import (
	"testing"
	"time"

	"github.com/campusride/CampusRide/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedRideEntries writes n ride-fare ledger entries for the user as payer,
// spaced a minute apart ending at the given time
func seedRideEntries(t *testing.T, f *fixture, userID uint, n int, end time.Time) {
	t.Helper()
	for i := 0; i < n; i++ {
		entry := models.Transaction{
			OperationType:   models.OperationRideFare,
			TransactionType: models.TransactionBoth,
			Amount:          100,
			SenderID:        &userID,
			CreatedAt:       end.Add(-time.Duration(n-1-i) * time.Minute),
		}
		require.NoError(t, f.db.Create(&entry).Error)
	}
}

func countRideTokens(t *testing.T, f *fixture, userID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, f.db.Model(&models.FreeRideToken{}).
		Where("user_id = ? AND kind = ?", userID, models.FreeRideKindRide).
		Count(&count).Error)
	return count
}

func TestIssueFreeRideTokenAtThreshold(t *testing.T) {
	f := newFixture(t)
	seedRideEntries(t, f, f.rider.ID, 20, time.Now())

	token, err := IssueFreeRideTokenIfEligible(f.db, f.rider, f.platform)
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Equal(t, models.FreeRideKindRide, token.Kind)
	assert.True(t, token.Active)
	assert.Equal(t, f.rider.ID, token.UserID)
	assert.EqualValues(t, 1, countRideTokens(t, f, f.rider.ID))
}

func TestIssueFreeRideTokenBelowThreshold(t *testing.T) {
	f := newFixture(t)
	seedRideEntries(t, f, f.rider.ID, 19, time.Now())

	token, err := IssueFreeRideTokenIfEligible(f.db, f.rider, f.platform)
	require.NoError(t, err)
	assert.Nil(t, token)
	assert.EqualValues(t, 0, countRideTokens(t, f, f.rider.ID))
}

func TestIssueFreeRideTokenIgnoresOldRides(t *testing.T) {
	f := newFixture(t)
	// All rides fall outside the trailing week
	seedRideEntries(t, f, f.rider.ID, 20, time.Now().AddDate(0, 0, -8))

	token, err := IssueFreeRideTokenIfEligible(f.db, f.rider, f.platform)
	require.NoError(t, err)
	assert.Nil(t, token)
}

func TestIssueFreeRideTokenOncePerWindow(t *testing.T) {
	f := newFixture(t)
	seedRideEntries(t, f, f.rider.ID, 20, time.Now())

	token, err := IssueFreeRideTokenIfEligible(f.db, f.rider, f.platform)
	require.NoError(t, err)
	require.NotNil(t, token)

	// The same window does not mint a second token
	token, err = IssueFreeRideTokenIfEligible(f.db, f.rider, f.platform)
	require.NoError(t, err)
	assert.Nil(t, token)
	assert.EqualValues(t, 1, countRideTokens(t, f, f.rider.ID))
}

func TestIssueFreeRideTokenNewWindow(t *testing.T) {
	f := newFixture(t)

	// An old token from a window that has fully rolled off
	old := models.FreeRideToken{
		Token:     generateFreeRideToken(),
		Kind:      models.FreeRideKindRide,
		Active:    false,
		UserID:    f.rider.ID,
		CreatedAt: time.Now().AddDate(0, 0, -30),
	}
	require.NoError(t, f.db.Create(&old).Error)

	seedRideEntries(t, f, f.rider.ID, 20, time.Now())

	token, err := IssueFreeRideTokenIfEligible(f.db, f.rider, f.platform)
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.EqualValues(t, 2, countRideTokens(t, f, f.rider.ID))
}

func TestGrantSocialShareTokenOnce(t *testing.T) {
	f := newFixture(t)

	token, err := GrantSocialShareToken(f.db, f.rider, f.platform)
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Equal(t, models.FreeRideKindSocialShare, token.Kind)
	assert.True(t, token.Active)

	// A second grant is refused even after the first token is spent
	require.NoError(t, f.db.Model(token).Update("active", false).Error)
	_, err = GrantSocialShareToken(f.db, f.rider, f.platform)
	require.ErrorIs(t, err, ErrFreeRideDenied)
}
