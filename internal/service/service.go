package service

import (
	"context"

	"github.com/ds124wfegd/WB_L3/promo/internal/database"
	"github.com/ds124wfegd/WB_L3/promo/internal/entity"
	"github.com/ds124wfegd/WB_L3/promo/internal/pkg/kafka"
)

type RenderService interface {
	SubmitRender(ctx context.Context, campaign string) (*entity.RenderJob, error)
	GetJob(id string) (*entity.RenderJob, error)
	ListCampaigns() ([]string, error)
}

// CampaignCatalog lists the campaigns available for rendering.
type CampaignCatalog interface {
	Campaigns() ([]string, error)
}

type renderService struct {
	repo     database.JobRepository
	producer kafka.Producer
	catalog  CampaignCatalog
}

func NewRenderService(repo database.JobRepository, producer kafka.Producer, catalog CampaignCatalog) RenderService {
	return &renderService{
		repo:     repo,
		producer: producer,
		catalog:  catalog,
	}
}
