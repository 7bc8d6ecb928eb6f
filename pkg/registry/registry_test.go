// pkg/registry/registry_test.go
package registry

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRegistry() *ActivityRegistry {
	return &ActivityRegistry{
		Version: "1.0.0",
		Activities: []Activity{
			{
				ID:          "validate-submission",
				DisplayName: "Validate Submission",
				Category:    "application",
				TaskType:    "validate-submission",
			},
			{
				ID:          "calculate-order-total",
				DisplayName: "Calculate Order Total",
				Category:    "pricing",
				TaskType:    "calculate-order-total",
			},
		},
	}
}

func TestRegistry_SaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configs", "activity-registry.json")

	require.NoError(t, SaveRegistry(validRegistry(), path))

	loaded, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Len(t, loaded.Activities, 2)
	assert.NotEmpty(t, loaded.LastUpdated)
	require.NotNil(t, loaded.Find("calculate-order-total"))
	assert.Equal(t, "pricing", loaded.Find("calculate-order-total").Category)
	assert.Nil(t, loaded.Find("missing"))
}

func TestRegistry_Validate(t *testing.T) {
	assert.NoError(t, validRegistry().Validate())

	empty := &ActivityRegistry{}
	assert.Error(t, empty.Validate())

	dupID := validRegistry()
	dupID.Activities[1].ID = dupID.Activities[0].ID
	assert.ErrorContains(t, dupID.Validate(), "duplicate activity ID")

	dupTask := validRegistry()
	dupTask.Activities[1].TaskType = dupTask.Activities[0].TaskType
	assert.ErrorContains(t, dupTask.Validate(), "duplicate task type")

	noCategory := validRegistry()
	noCategory.Activities[0].Category = ""
	assert.ErrorContains(t, noCategory.Validate(), "Category")

	unknownCategory := validRegistry()
	unknownCategory.Activities[0].Category = "billing"
	assert.ErrorContains(t, unknownCategory.Validate(), "unknown category")

	badTimeout := validRegistry()
	badTimeout.Activities[0].Timeout = "soon"
	assert.ErrorContains(t, badTimeout.Validate(), "invalid timeout")
}

func TestActivity_TimeoutDuration(t *testing.T) {
	a := Activity{Timeout: "30s"}
	d, err := a.TimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, d)

	unset := Activity{}
	d, err = unset.TimeoutDuration()
	require.NoError(t, err)
	assert.Zero(t, d)
}
