// internal/workers/application/validate-submission/handler.go
package validatesubmission

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"leasing-workers/internal/common/errors"
	"leasing-workers/internal/common/logger"
	"leasing-workers/internal/common/metrics"
	"leasing-workers/internal/formcheck"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "validate-submission"
)

type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
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

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.ErrCodeParseError)).Inc()
		h.throwError(client, job, string(errors.ErrCodeParseError), err.Error())
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, failure := h.Execute(ctx, &input)
	if failure != nil {
		metrics.SubmissionValidations.WithLabelValues("invalid").Inc()
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.ErrCodeSubmissionInvalid)).Inc()
		h.throwError(client, job, string(errors.ErrCodeSubmissionInvalid),
			fmt.Sprintf("%s (step %d: %s)", failure.Message, failure.Step, failure.StepName))
		return fmt.Errorf("submission invalid: %s", failure.Message)
	}

	metrics.SubmissionValidations.WithLabelValues("valid").Inc()
	if err := h.completeJob(client, job, output); err != nil {
		return err
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
	return nil
}

// Execute runs every step's completeness check in order, then the
// cross-step submit battery. The first failure wins and carries the step
// the applicant is sent back to.
func (h *Handler) Execute(_ context.Context, input *Input) (*Output, *StepFailure) {
	form := &input.Form

	for step := formcheck.StepPersonalInfo; step <= formcheck.StepReview; step++ {
		result := formcheck.ValidateStep(step, form)
		if result.IsValid {
			continue
		}
		return nil, &StepFailure{
			Message:     fmt.Sprintf("step %q is incomplete", step),
			Step:        int(step),
			StepName:    step.String(),
			FieldErrors: result.Errors,
		}
	}

	if err := formcheck.ValidateSubmission(form); err != nil {
		return nil, &StepFailure{
			Message:  err.Message,
			Step:     int(err.Step),
			StepName: err.Step.String(),
		}
	}

	return &Output{IsValid: true}, nil
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

func (h *Handler) throwError(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(ctx)
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}
