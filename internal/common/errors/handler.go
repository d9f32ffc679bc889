package errors

// ErrorHandler logs failed console actions and turns them into the text
// shown to the user.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// HandleActionError logs err against the view and action that raised it and
// returns the alert text. Validation failures are logged at warn level since
// they never reached the network.
func (h *ErrorHandler) HandleActionError(view, action string, err error) string {
	if err == nil {
		return ""
	}
	stdErr := Normalize(err)

	fields := LogFields(stdErr)
	fields["view"] = view
	fields["action"] = action

	if stdErr.Code == ErrCodeValidationFailed {
		h.logger.Warn("Action rejected", fields)
	} else {
		h.logger.Error("Action failed", fields)
	}
	return stdErr.Message
}
