package controllers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/tealeg/xlsx"

	"github.com/campusride/CampusRide/config"
	"github.com/campusride/CampusRide/models"
	"github.com/campusride/CampusRide/utils"
)

func fetchLedgerForExport(c *gin.Context) ([]models.Transaction, string, time.Time, time.Time, bool) {
	period := c.DefaultQuery("period", "day")
	startDate, endDate, ok := reportWindow(period, time.Now())
	if !ok {
		utils.LogError("Invalid period specified: %s", period)
		utils.BadRequest(c, "Invalid period", "Period must be day, week, or month")
		return nil, "", time.Time{}, time.Time{}, false
	}

	var transactions []models.Transaction
	if err := config.DB.Where("created_at >= ? AND created_at <= ?", startDate, endDate).
		Order("created_at DESC").
		Find(&transactions).Error; err != nil {
		utils.LogError("Failed to fetch ledger entries: %v", err)
		utils.InternalServerError(c, "Failed to fetch transactions", err.Error())
		return nil, "", time.Time{}, time.Time{}, false
	}
	return transactions, period, startDate, endDate, true
}

func formatOptionalID(id *uint) string {
	if id == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *id)
}

// Admin: Download transaction ledger as Excel
func DownloadLedgerExcel(c *gin.Context) {
	utils.LogInfo("DownloadLedgerExcel called")

	transactions, period, startDate, endDate, ok := fetchLedgerForExport(c)
	if !ok {
		return
	}
	utils.LogDebug("Retrieved %d ledger entries for Excel report", len(transactions))
	summary := summarizeLedger(transactions)

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Transaction Ledger")
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to create Excel sheet", err.Error())
		return
	}

	companyRow := sheet.AddRow()
	companyRow.AddCell().SetString("CAMPUSRIDE - Transaction Ledger")
	companyRow = sheet.AddRow()
	companyRow.AddCell().SetString("Campus ride hailing and payments")
	companyRow = sheet.AddRow()
	companyRow.AddCell().SetString("Email: support@campusride.app")
	companyRow = sheet.AddRow()
	companyRow.AddCell().SetString("Period: " + strings.ToUpper(period) + " | " + startDate.Format("2006-01-02") + " to " + endDate.Format("2006-01-02"))
	sheet.AddRow() // spacing

	headers := []string{"ID", "Date", "Operation", "Type", "Amount", "Sender", "Sender Before", "Sender After", "Receiver", "Receiver Before", "Receiver After", "Paystack Fee"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		cell := headerRow.AddCell()
		cell.SetString(h)
		style := xlsx.NewStyle()
		font := xlsx.DefaultFont()
		font.Bold = true
		style.Font = *font
		cell.SetStyle(style)
	}

	for _, t := range transactions {
		row := sheet.AddRow()
		row.AddCell().SetInt(int(t.ID))
		row.AddCell().SetString(t.CreatedAt.Format("2006-01-02 15:04"))
		row.AddCell().SetString(t.OperationType)
		row.AddCell().SetString(t.TransactionType)
		row.AddCell().SetFloat(t.Amount)
		row.AddCell().SetString(formatOptionalID(t.SenderID))
		row.AddCell().SetFloat(t.SenderBalanceBefore)
		row.AddCell().SetFloat(t.SenderBalanceAfter)
		row.AddCell().SetString(formatOptionalID(t.ReceiverID))
		row.AddCell().SetFloat(t.ReceiverBalanceBefore)
		row.AddCell().SetFloat(t.ReceiverBalanceAfter)
		row.AddCell().SetFloat(t.PaystackDeduction)
	}

	sheet.AddRow() // spacing

	summaryRow := sheet.AddRow()
	summaryRow.AddCell().SetString("Summary")
	style := xlsx.NewStyle()
	font := xlsx.DefaultFont()
	font.Bold = true
	style.Font = *font
	summaryRow.Cells[0].SetStyle(style)

	summaryData := [][]string{
		{"Total Entries", fmt.Sprintf("%d", summary.TotalEntries)},
		{"Total Volume", fmt.Sprintf("%.2f", summary.TotalVolume)},
		{"Top Up Volume", fmt.Sprintf("%.2f", summary.TopUpVolume)},
		{"Transfer Volume", fmt.Sprintf("%.2f", summary.TransferVolume)},
		{"Ride Fare Volume", fmt.Sprintf("%.2f", summary.RideFareVolume)},
		{"Paystack Fees", fmt.Sprintf("%.2f", summary.TotalPaystackFees)},
		{"Unique Users", fmt.Sprintf("%d", summary.UniqueUsers)},
		{"Avg. Transaction", fmt.Sprintf("%.2f", summary.AverageTransaction)},
	}
	for _, data := range summaryData {
		row := sheet.AddRow()
		row.AddCell().SetString(data[0])
		row.AddCell().SetString(data[1])
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=transaction_ledger_%s.xlsx", period))
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
		utils.InternalServerError(c, "Failed to write Excel file", err.Error())
		return
	}
	utils.LogInfo("Successfully generated Excel ledger for period %s", period)
}

// Admin: Download transaction ledger as PDF
func DownloadLedgerPDF(c *gin.Context) {
	utils.LogInfo("DownloadLedgerPDF called")

	transactions, period, startDate, endDate, ok := fetchLedgerForExport(c)
	if !ok {
		return
	}
	utils.LogDebug("Retrieved %d ledger entries for PDF report", len(transactions))
	summary := summarizeLedger(transactions)

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.Cell(0, 12, "CAMPUSRIDE - Transaction Ledger")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, "Campus ride hailing and payments")
	pdf.Ln(6)
	pdf.Cell(0, 8, "Email: support@campusride.app")
	pdf.Ln(6)
	pdf.Cell(0, 8, "Period: "+strings.ToUpper(period)+" | "+startDate.Format("2006-01-02")+" to "+endDate.Format("2006-01-02"))
	pdf.Ln(10)

	headers := []string{"ID", "Date", "Operation", "Amount", "Sender", "Snd Before", "Snd After", "Receiver", "Rcv Before", "Rcv After", "Fee"}
	colWidths := []float64{15, 32, 28, 25, 20, 25, 25, 20, 25, 25, 22}
	pdf.SetFont("Arial", "B", 11)
	for i, h := range headers {
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(colWidths[i], 9, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	fill := false
	for _, t := range transactions {
		pdf.SetFillColor(245, 245, 245)
		if fill {
			pdf.SetFillColor(230, 240, 255)
		}
		fill = !fill
		pdf.CellFormat(colWidths[0], 8, fmt.Sprintf("%d", t.ID), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[1], 8, t.CreatedAt.Format("2006-01-02 15:04"), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[2], 8, t.OperationType, "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[3], 8, fmt.Sprintf("%.2f", t.Amount), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(colWidths[4], 8, formatOptionalID(t.SenderID), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[5], 8, fmt.Sprintf("%.2f", t.SenderBalanceBefore), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(colWidths[6], 8, fmt.Sprintf("%.2f", t.SenderBalanceAfter), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(colWidths[7], 8, formatOptionalID(t.ReceiverID), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[8], 8, fmt.Sprintf("%.2f", t.ReceiverBalanceBefore), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(colWidths[9], 8, fmt.Sprintf("%.2f", t.ReceiverBalanceAfter), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(colWidths[10], 8, fmt.Sprintf("%.2f", t.PaystackDeduction), "1", 0, "R", fill, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "B", 13)
	pdf.SetFillColor(220, 230, 250)
	pdf.CellFormat(70, 10, "Summary", "1", 0, "C", true, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 11)
	pdf.SetFillColor(255, 255, 255)
	summaryData := [][]string{
		{"Total Entries", fmt.Sprintf("%d", summary.TotalEntries)},
		{"Total Volume", fmt.Sprintf("%.2f", summary.TotalVolume)},
		{"Top Up Volume", fmt.Sprintf("%.2f", summary.TopUpVolume)},
		{"Transfer Volume", fmt.Sprintf("%.2f", summary.TransferVolume)},
		{"Ride Fare Volume", fmt.Sprintf("%.2f", summary.RideFareVolume)},
		{"Paystack Fees", fmt.Sprintf("%.2f", summary.TotalPaystackFees)},
		{"Unique Users", fmt.Sprintf("%d", summary.UniqueUsers)},
		{"Avg. Transaction", fmt.Sprintf("%.2f", summary.AverageTransaction)},
	}
	for _, data := range summaryData {
		pdf.CellFormat(50, 8, data[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, data[1], "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=transaction_ledger_%s.pdf", period))
	if err := pdf.Output(c.Writer); err != nil {
		utils.LogError("Failed to write PDF file: %v", err)
		utils.InternalServerError(c, "Failed to write PDF file", err.Error())
		return
	}
	utils.LogInfo("Successfully generated PDF ledger for period %s", period)
}
