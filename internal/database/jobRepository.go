package database

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ds124wfegd/WB_L3/promo/internal/entity"
	"github.com/ds124wfegd/WB_L3/promo/internal/pkg/storage"
)

func NewJobRepository(storage storage.FileStorage) JobRepository {
	return &fileJobRepository{storage: storage}
}

func (r *fileJobRepository) Save(job *entity.RenderJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return r.storage.Save(r.getJobPath(job.ID), bytes.NewReader(data))
}

func (r *fileJobRepository) FindByID(id string) (*entity.RenderJob, error) {
	if id == "" || filepath.Base(id) != id {
		return nil, fmt.Errorf("job id %q: %w", id, entity.ErrInvalidInput)
	}

	reader, err := r.storage.Get(r.getJobPath(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", id, entity.ErrJobNotFound)
		}
		return nil, err
	}
	defer reader.Close()

	var job entity.RenderJob
	if err := json.NewDecoder(reader).Decode(&job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *fileJobRepository) Delete(id string) error {
	if !r.storage.Exists(r.getJobPath(id)) {
		return fmt.Errorf("%s: %w", id, entity.ErrJobNotFound)
	}
	return r.storage.Delete(r.getJobPath(id))
}

func (r *fileJobRepository) getJobPath(id string) string {
	return filepath.Join("jobs", id+".json")
}
