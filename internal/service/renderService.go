package service

import (
	"context"
	"fmt"
	"path"
	"slices"
	"time"

	"github.com/ds124wfegd/WB_L3/promo/internal/entity"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// SubmitRender records a queued job for the campaign and publishes it for
// the processor.
func (s *renderService) SubmitRender(ctx context.Context, campaign string) (*entity.RenderJob, error) {
	if campaign == "" || path.Base(campaign) != campaign || campaign == "." || campaign == ".." {
		return nil, fmt.Errorf("campaign %q: %w", campaign, entity.ErrInvalidInput)
	}

	campaigns, err := s.catalog.Campaigns()
	if err != nil {
		return nil, err
	}
	if !slices.Contains(campaigns, campaign) {
		return nil, fmt.Errorf("%s: %w", campaign, entity.ErrCampaignNotFound)
	}

	now := time.Now().UTC()
	job := &entity.RenderJob{
		ID:        uuid.New().String(),
		Campaign:  campaign,
		Status:    entity.JobQueued,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Save(job); err != nil {
		return nil, fmt.Errorf("save job: %w", err)
	}

	task := entity.RenderTask{JobID: job.ID, Campaign: campaign}
	if err := s.producer.SendMessage(ctx, job.ID, task); err != nil {
		job.Status = entity.JobFailed
		job.Error = err.Error()
		job.UpdatedAt = time.Now().UTC()
		if saveErr := s.repo.Save(job); saveErr != nil {
			logrus.WithField("job", job.ID).Errorf("Failed to mark job failed: %v", saveErr)
		}
		return nil, fmt.Errorf("enqueue job: %w", err)
	}

	logrus.WithFields(logrus.Fields{"job": job.ID, "campaign": campaign}).Info("Render job queued")
	return job, nil
}

func (s *renderService) GetJob(id string) (*entity.RenderJob, error) {
	return s.repo.FindByID(id)
}

func (s *renderService) ListCampaigns() ([]string, error) {
	return s.catalog.Campaigns()
}
