package controllers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/campusride/CampusRide/config"
	"github.com/campusride/CampusRide/models"
	"github.com/campusride/CampusRide/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TransactionRequest is the payload for every settlement kind. Which fields
// are required depends on type_of_operation.
type TransactionRequest struct {
	TypeOfOperation   string  `json:"type_of_operation" binding:"required"`
	CostOfTransaction float64 `json:"cost_of_transaction"`
	ReceiverEmail     string  `json:"receiver_email"`
	SchoolName        string  `json:"school_name"`
	VerificationCode  string  `json:"verification_code"`
	CarOwnerEmail     string  `json:"car_owner_email"`
	FreeToken         string  `json:"free_token"`
}

// settlementResponse is what a successful settlement returns to the caller
type settlementResponse struct {
	Entry         *models.Transaction `json:"transaction"`
	FreeRideToken string              `json:"free_ride_token,omitempty"`
}

// CreateTransaction dispatches a settlement request to the matching engine.
// All wallet and ledger writes for one settlement happen inside a single
// database transaction.
func CreateTransaction(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found in context")
		return
	}
	if user.Role == models.RoleAdmin || user.Role == models.RolePlatform {
		utils.Forbidden(c, "Admin and platform accounts cannot create transactions")
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	switch strings.ToLower(req.TypeOfOperation) {
	case models.OperationTopUp:
		handleTopUp(c, user, req)
	case models.OperationTransfer:
		handleTransfer(c, user, req)
	case models.OperationRideFare:
		handleRideFare(c, user, req)
	default:
		utils.BadRequest(c, "Unknown type of operation", req.TypeOfOperation)
	}
}

func handleTopUp(c *gin.Context, user *models.User, req TransactionRequest) {
	if req.VerificationCode == "" {
		utils.BadRequest(c, "verification_code is required for a wallet top up", nil)
		return
	}

	verification, err := paymentVerifier.VerifyTransaction(req.VerificationCode)
	if err != nil {
		utils.LogError("Paystack verification failed for %s: %v", user.Email, err)
		utils.ServiceUnavailable(c, "Payment provider could not be reached")
		return
	}
	if !verification.Verified {
		utils.Unauthorized(c, "Unauthorized transaction. Paystack payment was not verified")
		return
	}

	// The first verified payment carries the reusable authorization code;
	// keep it for recurring charges.
	if user.AuthorizationCode == "" && verification.AuthorizationCode != "" {
		if err := config.DB.Model(user).Updates(map[string]interface{}{
			"authorization_code":        verification.AuthorizationCode,
			"authorization_code_status": true,
		}).Error; err != nil {
			utils.LogError("Failed to store authorization code for %s: %v", user.Email, err)
		}
	}

	var entry *models.Transaction
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		entry, err = LoadWalletOperation(tx, user, req.CostOfTransaction, CurrentPlatformAccount())
		return err
	})
	if err != nil {
		settlementError(c, err)
		return
	}

	invalidateWalletCaches(user.ID)
	utils.LogInfo("Wallet top up of %.2f completed for %s", req.CostOfTransaction, user.Email)
	utils.Created(c, "Wallet topped up successfully", settlementResponse{Entry: entry})
}

func handleTransfer(c *gin.Context, user *models.User, req TransactionRequest) {
	receiver, ok := findTransactingUser(c, req.ReceiverEmail)
	if !ok {
		return
	}

	var entry *models.Transaction
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var opErr error
		entry, opErr = TransferOperation(tx, user, receiver, req.CostOfTransaction, CurrentPlatformAccount())
		return opErr
	})
	if err != nil {
		settlementError(c, err)
		return
	}

	invalidateWalletCaches(user.ID, receiver.ID)
	utils.LogInfo("Transfer of %.2f from %s to %s completed", req.CostOfTransaction, user.Email, receiver.Email)
	utils.Created(c, "Transfer completed successfully", settlementResponse{Entry: entry})
}

func handleRideFare(c *gin.Context, user *models.User, req TransactionRequest) {
	receiver, ok := findTransactingUser(c, req.ReceiverEmail)
	if !ok {
		return
	}

	if req.FreeToken != "" {
		var entry *models.Transaction
		err := config.DB.Transaction(func(tx *gorm.DB) error {
			var opErr error
			entry, opErr = FreeTokenRideOperation(tx, user, receiver, req.FreeToken, CurrentPlatformAccount())
			return opErr
		})
		if err != nil {
			settlementError(c, err)
			return
		}
		invalidateWalletCaches(user.ID, receiver.ID)
		utils.LogInfo("Free ride settled for %s with driver %s", user.Email, receiver.Email)
		utils.Created(c, "Free ride completed successfully", settlementResponse{Entry: entry})
		return
	}

	if req.SchoolName == "" {
		utils.BadRequest(c, "school_name is required for a ride fare", nil)
		return
	}
	var school models.School
	if err := config.DB.Where("name = ? OR alias = ?", req.SchoolName, req.SchoolName).First(&school).Error; err != nil {
		utils.NotFound(c, "School not found")
		return
	}

	carOwnerEmail := req.CarOwnerEmail
	if carOwnerEmail == "" {
		carOwnerEmail = os.Getenv("CAR_OWNER_EMAIL")
	}
	var carOwner models.User
	if err := config.DB.Where("email = ?", carOwnerEmail).First(&carOwner).Error; err != nil {
		utils.NotFound(c, "Car owner not found")
		return
	}

	var entry *models.Transaction
	var minted *models.FreeRideToken
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var opErr error
		entry, opErr = RideFareOperation(tx, user, receiver, req.CostOfTransaction, &school, &carOwner, CurrentPlatformAccount())
		if opErr != nil {
			return opErr
		}
		if opErr = tx.Model(user).Update("number_of_rides", gorm.Expr("number_of_rides + 1")).Error; opErr != nil {
			return opErr
		}
		user.NumberOfRides++
		minted, opErr = IssueFreeRideTokenIfEligible(tx, user, CurrentPlatformAccount())
		return opErr
	})
	if err != nil {
		settlementError(c, err)
		return
	}

	invalidateWalletCaches(user.ID, receiver.ID, carOwner.ID)
	utils.LogInfo("Ride fare of %.2f from %s to %s completed", req.CostOfTransaction, user.Email, receiver.Email)
	resp := settlementResponse{Entry: entry}
	if minted != nil {
		resp.FreeRideToken = minted.Token
	}
	utils.Created(c, "Ride fare completed successfully", resp)
}

// GetTransactions returns the caller's transaction history, newest first,
// covering entries where they appear as payer or payee
func GetTransactions(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		utils.Unauthorized(c, "User not found in context")
		return
	}

	page, limit := utils.GetPaginationParams(c)
	cacheKey := txHistoryCacheKey(user.ID, page, limit)

	type historyPage struct {
		Transactions []models.Transaction `json:"transactions"`
		Total        int64                `json:"total"`
	}

	if config.Redis != nil {
		var cached historyPage
		if hit, err := utils.GetCache(context.Background(), config.Redis, cacheKey, &cached); err == nil && hit {
			utils.SuccessWithPagination(c, "Transactions retrieved successfully", cached.Transactions, cached.Total, page, limit)
			return
		}
	}

	var result historyPage
	query := config.DB.Model(&models.Transaction{}).
		Where("sender_id = ? OR receiver_id = ?", user.ID, user.ID)
	if err := query.Count(&result.Total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count transactions", err.Error())
		return
	}
	if err := query.Order("created_at desc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&result.Transactions).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch transactions", err.Error())
		return
	}

	if config.Redis != nil {
		_ = utils.SetCache(context.Background(), config.Redis, cacheKey, result, 2*time.Minute)
	}

	utils.SuccessWithPagination(c, "Transactions retrieved successfully", result.Transactions, result.Total, page, limit)
}

// currentUser pulls the authenticated user placed in context by the auth
// middleware
func currentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get("user")
	if !exists {
		return nil, false
	}
	user, ok := value.(models.User)
	if !ok {
		return nil, false
	}
	return &user, true
}

// findTransactingUser resolves the counterparty of a transfer or ride fare.
// Writes the error response itself when resolution fails.
func findTransactingUser(c *gin.Context, email string) (*models.User, bool) {
	if email == "" {
		utils.BadRequest(c, "receiver_email is required", nil)
		return nil, false
	}
	var receiver models.User
	if err := config.DB.Where("email = ?", email).First(&receiver).Error; err != nil {
		utils.NotFound(c, fmt.Sprintf("Receiver %s not found", email))
		return nil, false
	}
	if receiver.Role == models.RoleAdmin {
		utils.Forbidden(c, "Cannot transact with an admin account")
		return nil, false
	}
	return &receiver, true
}

// settlementError maps engine rejections onto HTTP responses
func settlementError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNegativeAmount),
		errors.Is(err, ErrInsufficientFunds),
		errors.Is(err, ErrSelfTransfer),
		errors.Is(err, ErrTokenUsed),
		errors.Is(err, ErrPriceNotConfigured):
		utils.BadRequest(c, err.Error(), nil)
	case errors.Is(err, ErrTokenNotFound):
		utils.NotFound(c, err.Error())
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.NotFound(c, "Wallet not found")
	default:
		utils.LogError("Settlement failed: %v", err)
		utils.InternalServerError(c, "Transaction could not be completed", nil)
	}
}
