package proposalcomparison

import "rfp-console/internal/common/validation"

const (
	MsgSelectRFP    = "Select an RFP."
	MsgSelectVendor = "Select a vendor."
	MsgEnterText    = "Paste the proposal text."
)

var submitForm = validation.MustForm("proposal", map[string]interface{}{
	"type":     "object",
	"required": []string{"rfp_id", "vendor_id", "raw_response"},
	"properties": map[string]interface{}{
		"rfp_id":       validation.IDField(),
		"vendor_id":    validation.IDField(),
		"raw_response": validation.StringField(1),
	},
}, map[string]string{
	"rfp_id":       MsgSelectRFP,
	"vendor_id":    MsgSelectVendor,
	"raw_response": MsgEnterText,
})

// ValidateSubmission checks a manual proposal before it is sent.
func ValidateSubmission(rfpID, vendorID int64, text string) map[string]string {
	result := submitForm.Validate(map[string]interface{}{
		"rfp_id":       rfpID,
		"vendor_id":    vendorID,
		"raw_response": text,
	})
	if result.Valid {
		return nil
	}
	return result.FieldMessages()
}
