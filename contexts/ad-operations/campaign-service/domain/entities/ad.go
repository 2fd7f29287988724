package entities

import "time"

type AdStatus string

const (
	AdStatusPending  AdStatus = "pending"
	AdStatusApproved AdStatus = "approved"
	AdStatusRejected AdStatus = "rejected"
)

func IsSupportedAdStatus(value AdStatus) bool {
	switch value {
	case AdStatusPending, AdStatusApproved, AdStatusRejected:
		return true
	default:
		return false
	}
}

// Ad is an uploaded creative, optionally linked to one of the owner's
// campaigns. Views and Clicks are projection counters fed by placement
// tracking events.
type Ad struct {
	ID          int64
	UserID      int64
	CampaignID  *int64
	Title       string
	Description string
	FilePath    string
	Duration    int
	Status      AdStatus
	Views       int64
	Clicks      int64
	CreatedAt   time.Time
}

// Performance is the click-through rate in percent.
func Performance(views int64, clicks int64) float64 {
	if views <= 0 {
		return 0
	}
	return float64(clicks) / float64(views) * 100
}
