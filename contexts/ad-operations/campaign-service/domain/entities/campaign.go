package entities

import "time"

type CampaignStatus string

const (
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusPaused    CampaignStatus = "paused"
	CampaignStatusCompleted CampaignStatus = "completed"
)

func IsSupportedCampaignStatus(value CampaignStatus) bool {
	switch value {
	case CampaignStatusActive, CampaignStatusPaused, CampaignStatusCompleted:
		return true
	default:
		return false
	}
}

// Campaign is owned by a company user.
type Campaign struct {
	ID             int64
	UserID         int64
	Name           string
	Status         CampaignStatus
	Budget         float64
	Spent          float64
	StartDate      time.Time
	EndDate        *time.Time
	TargetAudience string
	CreatedAt      time.Time
}
