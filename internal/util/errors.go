package util

type ErrorCode int

type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

const (
	// error codes 1000-1099 = configuration rejected at startup
	ErrCodeNoSlackSection   ErrorCode = 1000
	ErrCodeNoWebhookURL     ErrorCode = 1001
	ErrCodeConfigUnreadable ErrorCode = 1002

	// error codes 1100-1199 = invocation errors
	ErrCodeUnknownHook ErrorCode = 1100
)

var (
	ErrCodes = map[ErrorCode]string{
		ErrCodeNoSlackSection:   "No Slack options set in config",
		ErrCodeNoWebhookURL:     "No Slack webhook url set in config",
		ErrCodeConfigUnreadable: "Unable to read config",
		ErrCodeUnknownHook:      "Unknown lifecycle hook",
	}
)

func (e ErrorCode) Error() string {
	if msg, ok := ErrCodes[e]; ok {
		return msg
	}
	return "Unknown error"
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the code so callers can match with errors.Is(err, ErrCodeX).
func (e *Error) Unwrap() error {
	return e.Code
}

func NewError(code ErrorCode, appendToMessage ...string) *Error {
	e := &Error{
		Code:    code,
		Message: code.Error(),
	}
	for _, appendMsg := range appendToMessage {
		e.Message += " : " + appendMsg
	}
	return e
}
