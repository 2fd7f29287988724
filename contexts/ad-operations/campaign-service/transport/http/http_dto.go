package http

// Field names follow the JSON contract the web client speaks (camelCase).

type CreateCampaignRequest struct {
	Name           string  `json:"name"`
	Budget         float64 `json:"budget"`
	StartDate      string  `json:"startDate,omitempty"`
	EndDate        string  `json:"endDate,omitempty"`
	TargetAudience string  `json:"targetAudience,omitempty"`
}

// UpdateCampaignRequest distinguishes absent fields from zero values with
// pointers.
type UpdateCampaignRequest struct {
	Name           *string  `json:"name"`
	Status         *string  `json:"status"`
	Budget         *float64 `json:"budget"`
	Spent          *float64 `json:"spent"`
	StartDate      *string  `json:"startDate"`
	EndDate        *string  `json:"endDate"`
	TargetAudience *string  `json:"targetAudience"`
}

type UpdateAdRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	CampaignID  *int64  `json:"campaignId"`
	Status      *string `json:"status"`
}

type CampaignResponse struct {
	ID             int64   `json:"id"`
	UserID         int64   `json:"userId"`
	Name           string  `json:"name"`
	Status         string  `json:"status"`
	Budget         float64 `json:"budget"`
	Spent          float64 `json:"spent"`
	StartDate      string  `json:"startDate"`
	EndDate        string  `json:"endDate,omitempty"`
	TargetAudience string  `json:"targetAudience,omitempty"`
	Views          int64   `json:"views"`
	Clicks         int64   `json:"clicks"`
	Performance    float64 `json:"performance"`
	CreatedAt      string  `json:"createdAt"`
}

type AdResponse struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"userId"`
	CampaignID  *int64  `json:"campaignId"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	FilePath    string  `json:"filePath"`
	Duration    int     `json:"duration"`
	Status      string  `json:"status"`
	Views       int64   `json:"views"`
	Clicks      int64   `json:"clicks"`
	Performance float64 `json:"performance"`
	CreatedAt   string  `json:"createdAt"`
}

type CompanySummaryResponse struct {
	TotalCampaigns     int     `json:"totalCampaigns"`
	ActiveCampaigns    int     `json:"activeCampaigns"`
	PausedCampaigns    int     `json:"pausedCampaigns"`
	CompletedCampaigns int     `json:"completedCampaigns"`
	TotalBudget        float64 `json:"totalBudget"`
	TotalSpent         float64 `json:"totalSpent"`
	TotalAds           int     `json:"totalAds"`
	PendingAds         int     `json:"pendingAds"`
	ApprovedAds        int     `json:"approvedAds"`
	RejectedAds        int     `json:"rejectedAds"`
	TotalViews         int64   `json:"totalViews"`
	TotalClicks        int64   `json:"totalClicks"`
	Performance        float64 `json:"performance"`
}

type DeleteResponse struct {
	Message string `json:"message"`
}
