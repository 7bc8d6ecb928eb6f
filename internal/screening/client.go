// Package screening submits normalized applications to the tenant-screening
// vendor.
package screening

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"leasing-workers/internal/common/errors"
	internalhttp "leasing-workers/internal/common/http"
	"leasing-workers/internal/common/logger"
	"leasing-workers/internal/normalize"
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *internalhttp.Client
	logger     logger.Logger
}

// SubmitResponse is the vendor's acknowledgement of a screening request.
type SubmitResponse struct {
	ReferenceID string `json:"referenceId"`
	Status      string `json:"status"`
	Message     string `json:"message,omitempty"`
}

func NewClient(baseURL, apiKey string, timeout time.Duration, log logger.Logger) *Client {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: internalhttp.NewClient(timeout),
		logger:     log.WithFields(map[string]interface{}{"component": "screening"}),
	}
}

// Submit validates the payload against the vendor schema, then posts it.
// Returns the vendor's screening reference on success.
func (c *Client) Submit(ctx context.Context, payload *normalize.VendorPayload) (string, error) {
	if err := ValidatePayload(payload); err != nil {
		return "", err
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", errors.NewScreeningSubmitError(fmt.Sprintf("marshal payload: %v", err))
	}

	url := c.baseURL + "/v1/applications"
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", errors.NewScreeningSubmitError(fmt.Sprintf("create request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.DoWithContext(ctx, req)
	if err != nil {
		return "", errors.NewScreeningSubmitError(fmt.Sprintf("execute request: %v", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.NewScreeningSubmitError(fmt.Sprintf("read response: %v", err))
	}

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return "", errors.NewScreeningSubmitError(
			fmt.Sprintf("vendor returned status %d: %s", resp.StatusCode, string(body)))
	}

	var submitResp SubmitResponse
	if err := json.Unmarshal(body, &submitResp); err != nil {
		return "", errors.NewScreeningSubmitError(fmt.Sprintf("unmarshal response: %v", err))
	}
	if submitResp.ReferenceID == "" {
		return "", errors.NewScreeningSubmitError("vendor response missing reference id")
	}

	c.logger.Info("screening submitted", map[string]interface{}{
		"referenceId": submitResp.ReferenceID,
		"status":      submitResp.Status,
	})
	return submitResp.ReferenceID, nil
}
