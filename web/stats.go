package web

import (
	"github.com/NomadCrew/feedback-portal/types"
	"github.com/shopspring/decimal"
)

const noAverage = "—"

// DashboardStats are the summary cards on the admin page.
type DashboardStats struct {
	Total     int
	Pending   int
	AvgRating string
}

// ComputeStats counts records, unanswered records and the mean rating to one decimal place.
func ComputeStats(feedbacks []*types.Feedback) DashboardStats {
	stats := DashboardStats{Total: len(feedbacks), AvgRating: noAverage}
	if len(feedbacks) == 0 {
		return stats
	}

	sum := decimal.Zero
	for _, fb := range feedbacks {
		if !fb.IsAnswered() {
			stats.Pending++
		}
		sum = sum.Add(decimal.NewFromInt(int64(fb.Rating)))
	}
	stats.AvgRating = sum.Div(decimal.NewFromInt(int64(len(feedbacks)))).Round(1).StringFixed(1)
	return stats
}
