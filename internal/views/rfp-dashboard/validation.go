package rfpdashboard

import "rfp-console/internal/common/validation"

const (
	MsgSelectVendor = "Select at least one vendor."
	MsgSelectRFP    = "Select an RFP to send."
)

var sendForm = validation.MustForm("rfp-send", map[string]interface{}{
	"type":     "object",
	"required": []string{"rfp_id", "vendor_ids"},
	"properties": map[string]interface{}{
		"rfp_id": validation.IDField(),
		"vendor_ids": map[string]interface{}{
			"type":        "array",
			"minItems":    1,
			"uniqueItems": true,
			"items":       validation.IDField(),
		},
	},
}, map[string]string{
	"rfp_id":     MsgSelectRFP,
	"vendor_ids": MsgSelectVendor,
})

// ValidateSend checks the surface before dispatch.
func ValidateSend(s *SendSurface) map[string]string {
	if s == nil {
		return map[string]string{"rfp_id": MsgSelectRFP}
	}
	ids := make([]interface{}, 0, len(s.Selected))
	for _, id := range s.Selected {
		ids = append(ids, id)
	}
	result := sendForm.Validate(map[string]interface{}{
		"rfp_id":     s.RFPID,
		"vendor_ids": ids,
	})
	if result.Valid {
		return nil
	}
	return result.FieldMessages()
}
