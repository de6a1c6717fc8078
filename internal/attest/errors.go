package attest

import "fmt"

// Wire error codes. The field-identifying codes are shared between
// validation and authentication failures so callers cannot tell an unknown
// position from a bad token by the code family alone.
const (
	CodePosition   = "position"
	CodeToken      = "token"
	CodeCommitment = "commitment"
	CodeSignature  = "signature"
	CodeFirstName  = "first_name"
	CodeLastName   = "last_name"
	CodeEmail      = "email"
	CodePubkey     = "pubkey"

	// CodeAPI is the generic internal/storage error code.
	CodeAPI = "api"

	// Classifier reply strings.
	CodeParamUndefined = "Undefined parameter"
	CodeTypeError      = "Type error"
	CodeTypeUnknown    = "Unknown type"
	CodeNotFound       = "Not found"
)

// Error is a wire-visible failure: Code goes into the response's "error"
// field, Message (optional) into "message". Cause is kept for logging only.
type Error struct {
	Code    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Code
}

func (e *Error) Unwrap() error { return e.Cause }

// Errf builds a wire error with a code only.
func Errf(code string) *Error { return &Error{Code: code} }

// ErrAPI wraps an internal failure under the generic "api" code, carrying
// the underlying message to the caller as the source system does.
func ErrAPI(cause error) *Error {
	return &Error{Code: CodeAPI, Message: cause.Error(), Cause: cause}
}
