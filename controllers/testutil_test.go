package controllers

import (
	"fmt"
	"testing"

	"github.com/campusride/CampusRide/config"
	"github.com/campusride/CampusRide/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fixture wires the minimum world a settlement needs: the platform account,
// the default rates, one school and one participant per role.
type fixture struct {
	db       *gorm.DB
	platform PlatformAccount
	rider    *models.User
	driver   *models.User
	carOwner *models.User
	school   *models.School
}

var testUserSeq int

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

func createUserWithWallet(t *testing.T, db *gorm.DB, role string, balance float64) *models.User {
	t.Helper()
	testUserSeq++
	user := models.User{
		Email:     fmt.Sprintf("%s%d@campusride.test", role, testUserSeq),
		Password:  "not-a-real-hash",
		FirstName: fmt.Sprintf("User%d", testUserSeq),
		LastName:  "Test",
		Role:      role,
	}
	require.NoError(t, db.Create(&user).Error)
	wallet := models.Wallet{UserID: &user.ID, Balance: balance}
	require.NoError(t, db.Create(&wallet).Error)
	return &user
}

func createSchoolWithWallet(t *testing.T, db *gorm.DB, balance float64) *models.School {
	t.Helper()
	testUserSeq++
	school := models.School{
		Name:  fmt.Sprintf("Test School %d", testUserSeq),
		Alias: fmt.Sprintf("ts%d", testUserSeq),
		Email: fmt.Sprintf("school%d@campusride.test", testUserSeq),
	}
	require.NoError(t, db.Create(&school).Error)
	wallet := models.Wallet{SchoolID: &school.ID, Balance: balance}
	require.NoError(t, db.Create(&wallet).Error)
	return &school
}

func seedRate(t *testing.T, db *gorm.DB, title string, rate float64) {
	t.Helper()
	require.NoError(t, db.Create(&models.PercentagePrice{Title: title, Rate: rate}).Error)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)

	seedRate(t, db, models.DefaultDriverRate, 0.40)
	seedRate(t, db, models.DefaultSchoolRate, 0.10)
	seedRate(t, db, models.DefaultCarOwnerRate, 0.10)
	seedRate(t, db, models.DefaultTransferRate, 0.05)

	platformUser := createUserWithWallet(t, db, models.RolePlatform, 0)
	platformWallet, err := walletForUser(db, platformUser.ID)
	require.NoError(t, err)

	return &fixture{
		db: db,
		platform: PlatformAccount{
			UserID:   platformUser.ID,
			WalletID: platformWallet.ID,
			Email:    platformUser.Email,
		},
		rider:    createUserWithWallet(t, db, models.RoleStudent, 0),
		driver:   createUserWithWallet(t, db, models.RoleDriver, 0),
		carOwner: createUserWithWallet(t, db, models.RoleCarOwner, 0),
		school:   createSchoolWithWallet(t, db, 0),
	}
}

func (f *fixture) setBalance(t *testing.T, userID uint, balance float64) {
	t.Helper()
	require.NoError(t, f.db.Model(&models.Wallet{}).
		Where("user_id = ?", userID).
		Update("balance", balance).Error)
}

func (f *fixture) balanceOf(t *testing.T, userID uint) float64 {
	t.Helper()
	wallet, err := walletForUser(f.db, userID)
	require.NoError(t, err)
	return wallet.Balance
}

func (f *fixture) schoolBalance(t *testing.T) float64 {
	t.Helper()
	wallet, err := walletForSchool(f.db, f.school.ID)
	require.NoError(t, err)
	return wallet.Balance
}

func (f *fixture) platformBalance(t *testing.T) float64 {
	t.Helper()
	wallet, err := walletByID(f.db, f.platform.WalletID)
	require.NoError(t, err)
	return wallet.Balance
}

func (f *fixture) notificationCount(t *testing.T, recipientID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, f.db.Model(&models.Notification{}).
		Where("recipient_id = ?", recipientID).
		Count(&count).Error)
	return count
}
