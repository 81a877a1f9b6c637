package client

import (
	"math"
	"strconv"
	"strings"
)

// CourseStats is the stats strip above the courses table, derived on
// every render from whatever list is loaded.
type CourseStats struct {
	Total     int
	Published int
	Draft     int
	Archived  int
}

func ComputeCourseStats(courses []Course) CourseStats {
	stats := CourseStats{Total: len(courses)}
	for _, course := range courses {
		switch course.Status {
		case "PUBLISHED":
			stats.Published++
		case "DRAFT":
			stats.Draft++
		case "ARCHIVED":
			stats.Archived++
		}
	}
	return stats
}

// PaymentStats partitions loaded payments by status. Revenue counts
// completed payments only; unparseable amounts count as zero.
type PaymentStats struct {
	Total     int
	Completed int
	Pending   int
	Failed    int
	Revenue   float64
}

func ComputePaymentStats(payments []Payment) PaymentStats {
	stats := PaymentStats{Total: len(payments)}
	for _, payment := range payments {
		switch payment.Status {
		case "completed":
			stats.Completed++
			stats.Revenue += parseAmount(payment.Amount)
		case "pending":
			stats.Pending++
		case "failed":
			stats.Failed++
		}
	}
	return stats
}

// OrderStats partitions loaded orders by status.
type OrderStats struct {
	Total     int
	Active    int
	Completed int
	Cancelled int
}

// parseAmount mirrors the server's tolerance for bad money strings:
// blank, malformed, NaN or infinite amounts count as zero.
func parseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func ComputeOrderStats(orders []Order) OrderStats {
	stats := OrderStats{Total: len(orders)}
	for _, order := range orders {
		switch order.Status {
		case "ACTIVE":
			stats.Active++
		case "COMPLETED":
			stats.Completed++
		case "CANCELLED":
			stats.Cancelled++
		}
	}
	return stats
}
