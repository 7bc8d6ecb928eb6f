// internal/workers/application/send-confirmation/handler.go
package sendconfirmation

import (
	"context"
	"encoding/json"
	"time"

	"leasing-workers/internal/common/errors"
	"leasing-workers/internal/common/logger"
	"leasing-workers/internal/common/metrics"
	"leasing-workers/internal/notify"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "send-confirmation"
)

type Handler struct {
	config       *Config
	notifier     *notify.Notifier
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
}

func NewHandler(config *Config, notifier *notify.Notifier, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		notifier:     notifier,
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

// Execute sends the confirmation email and, when a phone number is on
// file, the SMS. The email is the contractual confirmation and its failure
// fails the job; the SMS is best effort.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if err := h.notifier.SendConfirmationEmail(ctx, input.Email, input.ApplicantName, input.ApplicationID); err != nil {
		return nil, err
	}

	output := &Output{EmailSent: true}
	if input.Phone == "" {
		return output, nil
	}

	if err := h.notifier.SendConfirmationSMS(ctx, input.Phone, input.ApplicationID); err != nil {
		h.logger.Warn("confirmation sms failed", map[string]interface{}{
			"applicationId": input.ApplicationID,
			"error":         err.Error(),
		})
		return output, nil
	}

	output.SMSSent = true
	return output, nil
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
