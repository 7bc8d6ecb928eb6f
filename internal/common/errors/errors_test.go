// internal/common/errors/errors_test.go
package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	assert.Equal(t, "DUPLICATE_APPLICATION",
		CodeOf(NewDuplicateApplicationError("email already applied")))
	assert.Equal(t, "UNKNOWN_ERROR", CodeOf(fmt.Errorf("socket closed")))
}

func TestConvertToBPMNError(t *testing.T) {
	stdErr := NewScreeningSubmitError("vendor returned 503")
	bpmnErr := ConvertToBPMNError(stdErr)

	assert.Equal(t, "SCREENING_SUBMIT_FAILED", bpmnErr.Code)
	assert.True(t, bpmnErr.Retryable)
	assert.Equal(t, 3, bpmnErr.Retries)
}

func TestGetRetryCount(t *testing.T) {
	assert.Equal(t, 3, GetRetryCount(ErrCodeDatabaseInsertFailed))
	assert.Equal(t, 0, GetRetryCount(ErrCodeSubmissionInvalid))
}
