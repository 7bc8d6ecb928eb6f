// internal/workers/application/build-screening-payload/handler.go
package buildscreeningpayload

import (
	"context"
	"encoding/json"
	"time"

	"leasing-workers/internal/common/errors"
	"leasing-workers/internal/common/logger"
	"leasing-workers/internal/common/metrics"
	"leasing-workers/internal/normalize"
	"leasing-workers/internal/screening"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "build-screening-payload"
)

type Handler struct {
	config       *Config
	screening    *screening.Client
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
}

func NewHandler(config *Config, screeningClient *screening.Client, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		screening:    screeningClient,
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

// Execute normalizes the form into the vendor shape, validates it against
// the vendor contract, and submits it for screening. The form is assumed
// to have passed submission validation upstream; payload validation here
// guards the normalization itself.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	payload := normalize.BuildVendorPayload(&input.Form)

	if err := screening.ValidatePayload(payload); err != nil {
		h.logger.Warn("vendor payload failed contract validation", map[string]interface{}{
			"applicant": payload.Email,
			"error":     err.Error(),
		})
		return nil, err
	}

	referenceID, err := h.screening.Submit(ctx, payload)
	if err != nil {
		return nil, err
	}

	h.logger.Info("screening submitted", map[string]interface{}{
		"referenceId": referenceID,
	})

	return &Output{
		Payload:              payload,
		ScreeningReferenceID: referenceID,
	}, nil
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
