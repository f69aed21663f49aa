package database

import (
	"github.com/ds124wfegd/WB_L3/promo/internal/entity"
	"github.com/ds124wfegd/WB_L3/promo/internal/pkg/storage"
)

type JobRepository interface {
	Save(job *entity.RenderJob) error
	FindByID(id string) (*entity.RenderJob, error)
	Delete(id string) error
}

type fileJobRepository struct {
	storage storage.FileStorage
}
