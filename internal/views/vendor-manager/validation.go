package vendormanager

import "rfp-console/internal/common/validation"

const (
	MsgNameTooShort = "Name must be at least 2 characters."
	MsgInvalidEmail = "Invalid email address."
)

var vendorForm = validation.MustForm("vendor", GetInputSchema(), map[string]string{
	"name":  MsgNameTooShort,
	"email": MsgInvalidEmail,
})

func GetInputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":     "object",
		"required": []string{"name", "email"},
		"properties": map[string]interface{}{
			"name": validation.StringField(2),
			"email": map[string]interface{}{
				"type":    "string",
				"pattern": validation.EmailPattern,
			},
			"contact_person": map[string]interface{}{"type": "string"},
		},
	}
}

// ValidateForm returns the message to show under each failing field, or nil.
func ValidateForm(f Form) map[string]string {
	input := map[string]interface{}{
		"name":  f.Name,
		"email": f.Email,
	}
	if f.ContactPerson != "" {
		input["contact_person"] = f.ContactPerson
	}

	result := vendorForm.Validate(input)
	if result.Valid {
		return nil
	}
	return result.FieldMessages()
}
