// pkg/registry/schema.go
package registry

import "time"

// Categories group activities by the leasing workflow area they serve.
const (
	CategoryApplication = "application"
	CategoryPricing     = "pricing"
	CategoryListing     = "listing"
)

// ActivityRegistry is the catalog of worker activities the fleet can
// serve, kept under configs/ and maintained with the registry-updater.
type ActivityRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Activities  []Activity `json:"activities"`
}

// Activity describes one Zeebe service task: the task type workers
// subscribe to, its variable contract, and its error and retry surface.
type Activity struct {
	ID                   string                 `json:"id"`
	DisplayName          string                 `json:"displayName"`
	Description          string                 `json:"description"`
	Category             string                 `json:"category"`
	Version              string                 `json:"version"`
	TaskType             string                 `json:"taskType"`
	ImplementationStatus string                 `json:"implementationStatus"`
	InputSchema          map[string]interface{} `json:"inputSchema"`
	OutputSchema         map[string]interface{} `json:"outputSchema"`
	ErrorCodes           []string               `json:"errorCodes"`
	Timeout              string                 `json:"timeout"`
	Retries              int                    `json:"retries"`
	Workflows            []string               `json:"workflows"`
	Tags                 []string               `json:"tags"`
}

// TimeoutDuration parses the activity timeout. Empty means no declared
// timeout and the worker's configured default applies.
func (a *Activity) TimeoutDuration() (time.Duration, error) {
	if a.Timeout == "" {
		return 0, nil
	}
	return time.ParseDuration(a.Timeout)
}
