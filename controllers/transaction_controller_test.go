package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campusride/CampusRide/config"
	"github.com/campusride/CampusRide/models"
	"github.com/campusride/CampusRide/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVerifier struct {
	result *utils.PaystackVerification
	err    error
}

func (f fakeVerifier) VerifyTransaction(reference string) (*utils.PaystackVerification, error) {
	return f.result, f.err
}

// bindFixture points the package globals the handlers use at the test world
func bindFixture(f *fixture) {
	config.DB = f.db
	platformAccount = f.platform
}

func performJSON(t *testing.T, user *models.User, handler gin.HandlerFunc, method string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, "/", bytes.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")
	if user != nil {
		c.Set("user", *user)
	}
	handler(c)
	return w
}

func TestCreateTransactionTopUp(t *testing.T) {
	f := newFixture(t)
	bindFixture(f)
	InitPaymentVerifier(fakeVerifier{result: &utils.PaystackVerification{
		Verified:          true,
		AuthorizationCode: "AUTH_xyz",
	}})

	w := performJSON(t, f.rider, CreateTransaction, http.MethodPost, TransactionRequest{
		TypeOfOperation:   models.OperationTopUp,
		CostOfTransaction: 2000,
		VerificationCode:  "ref_ok",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.InDelta(t, 2000.0, f.balanceOf(t, f.rider.ID), 0.001)

	// The first verified payment stores the reusable authorization code
	var refreshed models.User
	require.NoError(t, f.db.First(&refreshed, f.rider.ID).Error)
	assert.Equal(t, "AUTH_xyz", refreshed.AuthorizationCode)
	assert.True(t, refreshed.AuthorizationCodeStatus)
}

func TestCreateTransactionTopUpUnverified(t *testing.T) {
	f := newFixture(t)
	bindFixture(f)
	InitPaymentVerifier(fakeVerifier{result: &utils.PaystackVerification{Verified: false}})

	w := performJSON(t, f.rider, CreateTransaction, http.MethodPost, TransactionRequest{
		TypeOfOperation:   models.OperationTopUp,
		CostOfTransaction: 2000,
		VerificationCode:  "ref_bad",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.InDelta(t, 0.0, f.balanceOf(t, f.rider.ID), 0.001)
}

func TestCreateTransactionTransfer(t *testing.T) {
	f := newFixture(t)
	bindFixture(f)
	f.setBalance(t, f.rider.ID, 500)

	w := performJSON(t, f.rider, CreateTransaction, http.MethodPost, TransactionRequest{
		TypeOfOperation:   models.OperationTransfer,
		CostOfTransaction: 200,
		ReceiverEmail:     f.driver.Email,
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.InDelta(t, 290.0, f.balanceOf(t, f.rider.ID), 0.001)
	assert.InDelta(t, 200.0, f.balanceOf(t, f.driver.ID), 0.001)
}

func TestCreateTransactionTransferInsufficient(t *testing.T) {
	f := newFixture(t)
	bindFixture(f)
	f.setBalance(t, f.rider.ID, 100)

	w := performJSON(t, f.rider, CreateTransaction, http.MethodPost, TransactionRequest{
		TypeOfOperation:   models.OperationTransfer,
		CostOfTransaction: 200,
		ReceiverEmail:     f.driver.Email,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.InDelta(t, 100.0, f.balanceOf(t, f.rider.ID), 0.001)
}

func TestCreateTransactionRideFare(t *testing.T) {
	f := newFixture(t)
	bindFixture(f)
	f.setBalance(t, f.rider.ID, 1500)

	w := performJSON(t, f.rider, CreateTransaction, http.MethodPost, TransactionRequest{
		TypeOfOperation:   models.OperationRideFare,
		CostOfTransaction: 1000,
		ReceiverEmail:     f.driver.Email,
		SchoolName:        f.school.Name,
		CarOwnerEmail:     f.carOwner.Email,
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.InDelta(t, 500.0, f.balanceOf(t, f.rider.ID), 0.001)
	assert.InDelta(t, 400.0, f.balanceOf(t, f.driver.ID), 0.001)

	// The ride counter moved
	var refreshed models.User
	require.NoError(t, f.db.First(&refreshed, f.rider.ID).Error)
	assert.Equal(t, 1, refreshed.NumberOfRides)
}

func TestCreateTransactionRejectsAdmin(t *testing.T) {
	f := newFixture(t)
	bindFixture(f)
	admin := createUserWithWallet(t, f.db, models.RoleAdmin, 0)

	w := performJSON(t, admin, CreateTransaction, http.MethodPost, TransactionRequest{
		TypeOfOperation:   models.OperationTopUp,
		CostOfTransaction: 100,
		VerificationCode:  "ref",
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateTransactionUnknownOperation(t *testing.T) {
	f := newFixture(t)
	bindFixture(f)

	w := performJSON(t, f.rider, CreateTransaction, http.MethodPost, TransactionRequest{
		TypeOfOperation: "withdraw",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
