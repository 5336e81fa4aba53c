package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

type LogStats struct {
	TotalErrors          int
	LoginSuccess         int
	LoginFailures        int
	TopUps               int
	Transfers            int
	RideFares            int
	SettlementFailures   int
	VerificationFailures int
	TempPasswordsIssued  int
	UserActivities       map[string]int
	ErrorPatterns        map[string]int
}

func main() {
	today := time.Now().Format("2006-01-02")
	logDir := "./logs"

	stats := &LogStats{
		UserActivities: make(map[string]int),
		ErrorPatterns:  make(map[string]int),
	}

	analyzeErrorLogs(filepath.Join(logDir, fmt.Sprintf("error-%s.log", today)), stats)
	analyzeInfoLogs(filepath.Join(logDir, fmt.Sprintf("info-%s.log", today)), stats)

	printReport(stats)
}

func analyzeErrorLogs(logFile string, stats *LogStats) {
	file, err := os.Open(logFile)
	if err != nil {
		fmt.Printf("Error opening log file %s: %v\n", logFile, err)
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		stats.TotalErrors++

		if strings.Contains(line, "Failed login attempt") {
			stats.LoginFailures++
			extractUserActivity(line, stats)
		}

		if strings.Contains(line, "Settlement failed") {
			stats.SettlementFailures++
		}

		if strings.Contains(line, "Paystack verification failed") {
			stats.VerificationFailures++
			extractUserActivity(line, stats)
		}

		extractErrorPattern(line, stats)
	}
}

func analyzeInfoLogs(logFile string, stats *LogStats) {
	file, err := os.Open(logFile)
	if err != nil {
		fmt.Printf("Error opening log file %s: %v\n", logFile, err)
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()

		if strings.Contains(line, "User logged in") {
			stats.LoginSuccess++
			extractUserActivity(line, stats)
		}
		if strings.Contains(line, "Wallet top up of") {
			stats.TopUps++
			extractUserActivity(line, stats)
		}
		if strings.Contains(line, "Transfer of") {
			stats.Transfers++
			extractUserActivity(line, stats)
		}
		if strings.Contains(line, "Ride fare of") {
			stats.RideFares++
			extractUserActivity(line, stats)
		}
		if strings.Contains(line, "Temporary password issued") {
			stats.TempPasswordsIssued++
		}
	}
}

func extractUserActivity(line string, stats *LogStats) {
	emailRegex := regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	if email := emailRegex.FindString(line); email != "" {
		stats.UserActivities[email]++
	}
}

func extractErrorPattern(line string, stats *LogStats) {
	parts := strings.Split(line, ":")
	if len(parts) > 1 {
		errorMsg := strings.TrimSpace(parts[1])
		stats.ErrorPatterns[errorMsg]++
	}
}

func printReport(stats *LogStats) {
	fmt.Println("\n=== Log Analysis Report ===")
	fmt.Println("Generated:", time.Now().Format("2006-01-02 15:04:05"))

	fmt.Println("\n1. Authentication Statistics:")
	fmt.Printf("   Successful Logins: %d\n", stats.LoginSuccess)
	fmt.Printf("   Failed Logins: %d\n", stats.LoginFailures)
	fmt.Printf("   Temporary Passwords Issued: %d\n", stats.TempPasswordsIssued)

	fmt.Println("\n2. Settlement Statistics:")
	fmt.Printf("   Wallet Top Ups: %d\n", stats.TopUps)
	fmt.Printf("   Transfers: %d\n", stats.Transfers)
	fmt.Printf("   Ride Fares: %d\n", stats.RideFares)
	fmt.Printf("   Failed Settlements: %d\n", stats.SettlementFailures)
	fmt.Printf("   Failed Payment Verifications: %d\n", stats.VerificationFailures)

	fmt.Println("\n3. Error Statistics:")
	fmt.Printf("   Total Errors: %d\n", stats.TotalErrors)

	fmt.Println("\n4. Most Active Users:")
	printTopUsers(stats.UserActivities, 5)

	fmt.Println("\n5. Most Common Errors:")
	printTopErrors(stats.ErrorPatterns, 5)
}

func printTopUsers(users map[string]int, limit int) {
	type userActivity struct {
		email string
		count int
	}

	var activities []userActivity
	for email, count := range users {
		activities = append(activities, userActivity{email, count})
	}

	sort.Slice(activities, func(i, j int) bool {
		return activities[i].count > activities[j].count
	})

	for i, activity := range activities {
		if i >= limit {
			break
		}
		fmt.Printf("   %s: %d activities\n", activity.email, activity.count)
	}
}

func printTopErrors(errors map[string]int, limit int) {
	type errorCount struct {
		error string
		count int
	}

	var errorList []errorCount
	for err, count := range errors {
		errorList = append(errorList, errorCount{err, count})
	}

	sort.Slice(errorList, func(i, j int) bool {
		return errorList[i].count > errorList[j].count
	})

	for i, err := range errorList {
		if i >= limit {
			break
		}
		fmt.Printf("   %s: %d occurrences\n", err.error, err.count)
	}
}
