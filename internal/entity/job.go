package entity

import "time"

const (
	JobQueued     = "queued"
	JobProcessing = "processing"
	JobCompleted  = "completed"
	JobFailed     = "failed"
)

type RenderJob struct {
	ID        string          `json:"id"`
	Campaign  string          `json:"campaign"`
	Status    string          `json:"status"`
	Error     string          `json:"error,omitempty"`
	Report    *CampaignReport `json:"report,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// RenderTask is the message published to the job queue.
type RenderTask struct {
	JobID    string `json:"job_id"`
	Campaign string `json:"campaign"`
}

type ImageFailure struct {
	Category string `json:"category"`
	Image    string `json:"image"`
	Error    string `json:"error"`
}

type CampaignReport struct {
	Campaign string         `json:"campaign"`
	Outputs  []string       `json:"outputs"`
	Failures []ImageFailure `json:"failures,omitempty"`
	Warnings []string       `json:"warnings,omitempty"`
	Skipped  bool           `json:"skipped,omitempty"`
}

type RenderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type CampaignListResponse struct {
	Campaigns []string `json:"campaigns"`
}
