package rfpform

import (
	"math"
	"strconv"
	"strings"

	"rfp-console/internal/common/validation"
)

const (
	MinInputLength = 10

	MsgInputTooShort = "Please describe your request in more detail."
	MsgBudgetNumber  = "Budget must be a number."
)

var requestForm = validation.MustForm("rfp-request", map[string]interface{}{
	"type":     "object",
	"required": []string{"natural_language"},
	"properties": map[string]interface{}{
		"natural_language": validation.StringField(MinInputLength),
	},
}, map[string]string{
	"natural_language": MsgInputTooShort,
})

// ValidateInput checks the free-text request before generation.
func ValidateInput(input string) map[string]string {
	result := requestForm.Validate(map[string]interface{}{"natural_language": input})
	if result.Valid {
		return nil
	}
	return result.FieldMessages()
}

// ParseBudget turns the edited budget text into a number. Empty text means
// no budget.
func ParseBudget(text string) (*float64, bool) {
	text = strings.TrimSpace(strings.ReplaceAll(text, ",", ""))
	if text == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, false
	}
	return &v, true
}
