// Package apperr defines the canonical error codes surfaced by the request
// helpers, each with a fallback message used when a failure carries none.
package apperr

// Predefined error codes. NETWORK_ERROR covers every failure path of an
// outbound request: transport, non-2xx status, and response decoding.
var (
	ErrorCodeNetwork = NewErrorCode("NETWORK_ERROR", "An error occurred while making the request.", 100)
)

// ErrorCode describes a canonical application error code.
// It carries a numeric severity/priority (Value).
type ErrorCode struct {
	code    string
	message string
	value   int
}

func NewErrorCode(code, message string, value int) *ErrorCode {
	return &ErrorCode{code: code, message: message, value: value}
}

func (ec *ErrorCode) Code() string    { return ec.code }
func (ec *ErrorCode) Message() string { return ec.message }
func (ec *ErrorCode) Value() int      { return ec.value }

// MessageOr returns msg, or the code's fallback message when msg is empty.
func (ec *ErrorCode) MessageOr(msg string) string {
	if msg != "" {
		return msg
	}
	return ec.message
}
