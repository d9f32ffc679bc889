// Package viewstate holds the per-action status every console view carries.
package viewstate

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Base is embedded in each view's State. Alert is shown once and then
// cleared by TakeAlert.
type Base struct {
	Status      Status            `json:"status"`
	Alert       string            `json:"alert,omitempty"`
	FieldErrors map[string]string `json:"field_errors,omitempty"`
}

// Begin marks an action as in flight and drops the previous action's errors.
func (b *Base) Begin() {
	b.Status = StatusLoading
	b.FieldErrors = nil
}

func (b *Base) Succeed(alert string) {
	b.Status = StatusSuccess
	if alert != "" {
		b.Alert = alert
	}
}

func (b *Base) Fail(alert string) {
	b.Status = StatusError
	if alert != "" {
		b.Alert = alert
	}
}

// Reject records field errors for an action that never reached the network.
func (b *Base) Reject(fields map[string]string) {
	b.Status = StatusError
	b.FieldErrors = fields
}

func (b *Base) Loading() bool {
	return b.Status == StatusLoading
}

func (b *Base) FieldError(field string) string {
	return b.FieldErrors[field]
}

// TakeAlert returns the pending alert and clears it.
func (b *Base) TakeAlert() string {
	a := b.Alert
	b.Alert = ""
	return a
}
