package controllers

import (
	"time"

	"github.com/campusride/CampusRide/config"
	"github.com/campusride/CampusRide/models"
	"github.com/campusride/CampusRide/utils"
	"github.com/gin-gonic/gin"
)

// AdminListTransactions returns the full ledger, newest first, optionally
// filtered by operation type or user
func AdminListTransactions(c *gin.Context) {
	page, limit := utils.GetPaginationParams(c)

	query := config.DB.Model(&models.Transaction{})
	if op := c.Query("operation_type"); op != "" {
		query = query.Where("operation_type = ?", op)
	}
	if userID := c.Query("user_id"); userID != "" {
		query = query.Where("sender_id = ? OR receiver_id = ?", userID, userID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count ledger entries: %v", err)
		utils.InternalServerError(c, "Failed to count transactions", err.Error())
		return
	}

	var transactions []models.Transaction
	if err := query.Order("created_at desc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&transactions).Error; err != nil {
		utils.LogError("Failed to fetch ledger entries: %v", err)
		utils.InternalServerError(c, "Failed to fetch transactions", err.Error())
		return
	}

	utils.SuccessWithPagination(c, "Transactions retrieved successfully", transactions, total, page, limit)
}

// reportWindow converts a period query value into a closed time range
func reportWindow(period string, now time.Time) (time.Time, time.Time, bool) {
	switch period {
	case "day":
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		end := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999999, now.Location())
		return start, end, true
	case "week":
		end := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999999, now.Location())
		start := end.AddDate(0, 0, -6)
		start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
		return start, end, true
	case "month":
		start := now.AddDate(0, 0, -30).Truncate(24 * time.Hour)
		end := now.Add(24 * time.Hour)
		return start, end, true
	}
	return time.Time{}, time.Time{}, false
}

// ledgerSummary aggregates a report window for the export footers
type ledgerSummary struct {
	TotalEntries       int
	TotalVolume        float64
	TopUpVolume        float64
	TransferVolume     float64
	RideFareVolume     float64
	TotalPaystackFees  float64
	UniqueUsers        int
	AverageTransaction float64
}

func summarizeLedger(transactions []models.Transaction) ledgerSummary {
	var summary ledgerSummary
	userSet := make(map[uint]bool)
	for _, t := range transactions {
		summary.TotalEntries++
		summary.TotalVolume += t.Amount
		summary.TotalPaystackFees += t.PaystackDeduction
		switch t.OperationType {
		case models.OperationTopUp:
			summary.TopUpVolume += t.Amount
		case models.OperationTransfer:
			summary.TransferVolume += t.Amount
		case models.OperationRideFare:
			summary.RideFareVolume += t.Amount
		}
		if t.SenderID != nil {
			userSet[*t.SenderID] = true
		}
		if t.ReceiverID != nil {
			userSet[*t.ReceiverID] = true
		}
	}
	summary.UniqueUsers = len(userSet)
	if summary.TotalEntries > 0 {
		summary.AverageTransaction = summary.TotalVolume / float64(summary.TotalEntries)
	}
	return summary
}
