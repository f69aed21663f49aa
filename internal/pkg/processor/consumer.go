package processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ds124wfegd/WB_L3/promo/internal/database"
	"github.com/ds124wfegd/WB_L3/promo/internal/entity"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// JobRunner executes queued render jobs and records their outcome.
type JobRunner struct {
	pipeline *Pipeline
	jobs     database.JobRepository
	now      func() time.Time
}

func NewJobRunner(pipeline *Pipeline, jobs database.JobRepository) *JobRunner {
	return &JobRunner{pipeline: pipeline, jobs: jobs, now: time.Now}
}

func (r *JobRunner) Run(ctx context.Context, task entity.RenderTask) error {
	job, err := r.jobs.FindByID(task.JobID)
	if errors.Is(err, entity.ErrJobNotFound) {
		job = &entity.RenderJob{ID: task.JobID, Campaign: task.Campaign, CreatedAt: r.now()}
	} else if err != nil {
		return fmt.Errorf("load job: %w", err)
	}

	job.Status = entity.JobProcessing
	job.UpdatedAt = r.now()
	if err := r.jobs.Save(job); err != nil {
		return fmt.Errorf("save job: %w", err)
	}

	report, runErr := r.pipeline.RunCampaign(ctx, task.Campaign)
	job.Report = report
	job.UpdatedAt = r.now()
	if runErr != nil {
		job.Status = entity.JobFailed
		job.Error = runErr.Error()
	} else {
		job.Status = entity.JobCompleted
	}
	if err := r.jobs.Save(job); err != nil {
		return fmt.Errorf("save job: %w", err)
	}
	return runErr
}

// StartRenderConsumer reads render tasks from Kafka until ctx is done. Each
// task runs in its own goroutine; a bad message is logged and skipped.
func StartRenderConsumer(ctx context.Context, brokers []string, topic, groupID string, runner *JobRunner) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6, // 10MB
		CommitInterval: time.Second,
		StartOffset:    kafka.FirstOffset,
	})
	defer reader.Close()

	logrus.Info("Render consumer started...")
	logrus.Infof("Connected to Kafka brokers: %v", brokers)

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				logrus.Info("Render consumer stopped")
				return
			}
			logrus.Errorf("Error reading message from Kafka: %v", err)
			continue
		}

		logrus.WithFields(logrus.Fields{
			"topic":     msg.Topic,
			"partition": msg.Partition,
			"offset":    msg.Offset,
		}).Debugf("Received message: %s", string(msg.Value))

		var task entity.RenderTask
		if err := json.Unmarshal(msg.Value, &task); err != nil || task.Campaign == "" {
			logrus.Errorf("Failed to parse task: %v", err)
			continue
		}

		go func(t entity.RenderTask) {
			if err := runner.Run(ctx, t); err != nil {
				logrus.WithField("job", t.JobID).Errorf("Render job failed: %v", err)
			} else {
				logrus.WithField("job", t.JobID).Info("Render job completed")
			}
		}(task)
	}
}
