// internal/workers/application/persist-application/handler.go
package persistapplication

import (
	"context"
	"encoding/json"
	"time"

	"leasing-workers/internal/common/errors"
	"leasing-workers/internal/common/logger"
	"leasing-workers/internal/common/metrics"
	"leasing-workers/internal/draft"
	"leasing-workers/internal/normalize"
	"leasing-workers/internal/store"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "persist-application"
)

type Handler struct {
	config       *Config
	applications *store.ApplicationStore
	drafts       *draft.Store
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
}

// NewHandler wires the durable store and, optionally, the draft store so a
// submitted applicant's saved draft can be cleared. drafts may be nil.
func NewHandler(config *Config, applications *store.ApplicationStore, drafts *draft.Store, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		applications: applications,
		drafts:       drafts,
		logger:       scoped,
		errorHandler: errors.NewErrorHandler(scoped),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) error {
	startTime := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, errors.CodeOf(err)).Inc()
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return err
	}

	output, err := h.Execute(ctx, &input)
	if err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, errors.CodeOf(err)).Inc()
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return err
	}

	if err := h.completeJob(client, job, output); err != nil {
		return err
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
	return nil
}

// Execute flattens the form into the durable record and inserts it. A
// duplicate for the same email and unit surfaces as a business error the
// workflow routes to the already-applied path.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	record := normalize.BuildPersistenceRecord(&input.Form)

	id, err := h.applications.Insert(ctx, record)
	if err != nil {
		return nil, err
	}

	h.logger.Info("application persisted", map[string]interface{}{
		"applicationId": id,
		"unitId":        record.UnitID,
	})

	// The draft has served its purpose; clearing it is best effort.
	if h.drafts != nil && input.SessionID != "" {
		if err := h.drafts.Clear(ctx, input.SessionID); err != nil {
			h.logger.Warn("draft clear failed", map[string]interface{}{
				"sessionId": input.SessionID,
				"error":     err.Error(),
			})
		}
	}

	return &Output{ApplicationID: id}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return err
	}
	if _, err = cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to complete job", map[string]interface{}{
			"error": err,
		})
		return err
	}
	return nil
}
