// internal/workers/pricing/calculate-order-total/handler.go
package calculateordertotal

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"leasing-workers/internal/common/errors"
	"leasing-workers/internal/common/logger"
	"leasing-workers/internal/common/metrics"
	"leasing-workers/internal/pricing"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "calculate-order-total"
)

type Handler struct {
	config       *Config
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
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

// Execute resolves the monthly rent for the chosen lease term, then prices
// the product order against it. The unit's explicit term table wins over
// the curve-derived baseRent fallback.
func (h *Handler) Execute(_ context.Context, input *Input) (*Output, error) {
	baseRent, err := h.resolveRent(input)
	if err != nil {
		return nil, err
	}

	engine := pricing.NewEngine(baseRent, input.CreditScore,
		pricing.WithRentCurve(h.config.rentCurve()),
		pricing.WithCoupons(h.config.Coupons))

	if err := engine.ValidateCheckout(input.Order, input.HasPetInfo); err != nil {
		return nil, businessError(errors.ErrCodePetInfoRequired, err.Error())
	}

	totals, err := engine.CalculateTotal(input.Order)
	if err != nil {
		if stderrors.Is(err, pricing.ErrInvalidCoupon) {
			return nil, businessError(errors.ErrCodeInvalidCoupon, err.Error())
		}
		return nil, err
	}

	metrics.PricingCalculations.Inc()
	h.logger.Info("order priced", map[string]interface{}{
		"monthlyRent": baseRent,
		"total":       totals.Total,
	})

	return &Output{MonthlyRent: baseRent, Totals: totals}, nil
}

// resolveRent prefers the unit's published rent for the exact term. Without
// a unit the caller must supply baseRent directly.
func (h *Handler) resolveRent(input *Input) (float64, error) {
	if input.Unit != nil {
		if rent, ok := input.Unit.TermRent(input.LeaseTermMonths); ok {
			return rent, nil
		}
		if input.BaseRent <= 0 {
			return 0, businessError(errors.ErrCodeLeaseTermNotFound,
				fmt.Sprintf("unit %s has no %d-month lease term", input.Unit.ID, input.LeaseTermMonths))
		}
		// Term not published for this unit; derive it from the curve.
		return h.config.rentCurve()(input.BaseRent, input.LeaseTermMonths), nil
	}

	if input.BaseRent <= 0 {
		return 0, businessError(errors.ErrCodeLeaseTermNotFound,
			"neither a unit lease term nor a base rent was provided")
	}
	return h.config.rentCurve()(input.BaseRent, input.LeaseTermMonths), nil
}

func businessError(code errors.ErrorCode, message string) *errors.StandardError {
	return &errors.StandardError{
		Code:      code,
		Message:   message,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
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
