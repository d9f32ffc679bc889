package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// EmailPattern is the address shape accepted by the vendor form.
const EmailPattern = `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`

var (
	emailRegexp = regexp.MustCompile(EmailPattern)
	urlRegexp   = regexp.MustCompile(`^https?://[^\s/$.?#].[^\s]*$`)
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Form is a compiled JSON schema for one console form plus the message shown
// under each field when it fails.
type Form struct {
	name     string
	schema   *gojsonschema.Schema
	messages map[string]string
}

// NewForm compiles schema (a JSON-schema document expressed as Go values).
func NewForm(name string, schema map[string]interface{}, messages map[string]string) (*Form, error) {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(schema))
	if err != nil {
		return nil, fmt.Errorf("compile %s schema: %w", name, err)
	}
	return &Form{name: name, schema: compiled, messages: messages}, nil
}

// MustForm is NewForm for package-level schemas known to be valid.
func MustForm(name string, schema map[string]interface{}, messages map[string]string) *Form {
	f, err := NewForm(name, schema, messages)
	if err != nil {
		panic(err)
	}
	return f
}

// Validate checks a form submission. The returned result is never nil.
func (f *Form) Validate(input map[string]interface{}) *ValidationResult {
	result, err := f.schema.Validate(gojsonschema.NewGoLoader(input))
	if err != nil {
		return &ValidationResult{
			Valid: false,
			Errors: []ValidationError{{
				Field:   "(root)",
				Message: fmt.Sprintf("%s form: %v", f.name, err),
				Code:    "SCHEMA_ERROR",
			}},
		}
	}

	errs := make([]ValidationError, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		field := re.Field()
		if re.Type() == "required" {
			if prop, ok := re.Details()["property"].(string); ok {
				field = prop
			}
		}
		field = strings.TrimPrefix(field, "(root).")

		msg := re.Description()
		if custom, ok := f.messages[field]; ok {
			msg = custom
		}
		errs = append(errs, ValidationError{
			Field:   field,
			Message: msg,
			Code:    strings.ToUpper(re.Type()),
		})
	}

	return &ValidationResult{
		Valid:  len(errs) == 0,
		Errors: errs,
	}
}

// FieldMessages returns the first message recorded for each field.
func (vr *ValidationResult) FieldMessages() map[string]string {
	out := make(map[string]string, len(vr.Errors))
	for _, err := range vr.Errors {
		if _, seen := out[err.Field]; !seen {
			out[err.Field] = err.Message
		}
	}
	return out
}

// Fields lists the failing fields in sorted order.
func (vr *ValidationResult) Fields() []string {
	seen := vr.FieldMessages()
	out := make([]string, 0, len(seen))
	for f := range seen {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field {
			return true
		}
	}
	return false
}

func ValidateEmail(email string) bool {
	return emailRegexp.MatchString(email)
}

func ValidateURL(url string) bool {
	return urlRegexp.MatchString(url)
}

// StringField is a string property with a minimum length.
func StringField(minLength int) map[string]interface{} {
	return map[string]interface{}{"type": "string", "minLength": minLength}
}

// IDField is an integer property that must reference a stored record.
func IDField() map[string]interface{} {
	return map[string]interface{}{"type": "integer", "minimum": 1}
}
