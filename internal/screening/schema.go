package screening

import (
	"fmt"
	"strings"

	"leasing-workers/internal/common/errors"
	"leasing-workers/internal/normalize"

	"github.com/xeipuuv/gojsonschema"
)

// payloadSchema is the vendor's submission contract. It is checked locally
// before every submit so contract drift fails here, not at the vendor.
var payloadSchema = map[string]interface{}{
	"type": "object",
	"required": []string{
		"FirstName", "LastName", "Email", "Phone", "DOB", "SSN",
		"CitizenshipStatus", "MoveInDate", "LeaseTerm", "Addresses", "Employers",
	},
	"properties": map[string]interface{}{
		"FirstName":         map[string]interface{}{"type": "string", "minLength": 1},
		"LastName":          map[string]interface{}{"type": "string", "minLength": 1},
		"Email":             map[string]interface{}{"type": "string", "format": "email"},
		"Phone":             map[string]interface{}{"type": "string", "pattern": `^\+[0-9]{7,15}$`},
		"DOB":               map[string]interface{}{"type": "string", "pattern": `^[0-9]{4}-[0-9]{2}-[0-9]{2}$`},
		"SSN":               map[string]interface{}{"type": "string", "pattern": `^[0-9]{9}$`},
		"CitizenshipStatus": map[string]interface{}{"type": "string", "enum": []string{"Citizen", "Non-Citizen"}},
		"MoveInDate":        map[string]interface{}{"type": "string", "pattern": `^[0-9]{4}-[0-9]{2}-[0-9]{2}$`},
		"LeaseTerm":         map[string]interface{}{"type": "integer", "minimum": 1},
		"Addresses": map[string]interface{}{
			"type":     "array",
			"minItems": 1,
			"items": map[string]interface{}{
				"type":     "object",
				"required": []string{"Street", "City", "State", "Zip"},
			},
		},
		"Employers": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type":     "object",
				"required": []string{"Name", "Income"},
			},
		},
		"LeaseHolders":        map[string]interface{}{"type": "array"},
		"Guarantors":          map[string]interface{}{"type": "array"},
		"AdditionalOccupants": map[string]interface{}{"type": "array"},
		"AdditionalInfo":      map[string]interface{}{"type": "object"},
	},
}

// ValidatePayload checks the assembled payload against the vendor schema.
func ValidatePayload(payload *normalize.VendorPayload) error {
	schemaLoader := gojsonschema.NewGoLoader(payloadSchema)
	docLoader := gojsonschema.NewGoLoader(payload)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return errors.NewPayloadValidationError(err.Error())
	}
	if result.Valid() {
		return nil
	}

	details := make([]string, 0, len(result.Errors()))
	for _, resErr := range result.Errors() {
		details = append(details, fmt.Sprintf("%s: %s", resErr.Field(), resErr.Description()))
	}
	return errors.NewPayloadValidationError(strings.Join(details, "; "))
}
