package errno

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// UnknownError is what ToMessage falls back to when nothing readable can be extracted.
const UnknownError = "Unknown error"

// Errno defines the error code logic
type Errno struct {
	Code    int
	Status  int // HTTP status
	Message string
	Fields  map[string]string
}

func (e Errno) Error() string {
	return e.Message
}

// WithMessage returns a copy carrying a more specific message.
func (e Errno) WithMessage(msg string) Errno {
	e.Message = msg
	return e
}

// WithFields returns a copy with extra machine-checkable fields attached to the response body.
func (e Errno) WithFields(fields map[string]string) Errno {
	merged := make(map[string]string, len(e.Fields)+len(fields))
	for k, v := range e.Fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	e.Fields = merged
	return e
}

// Is matches on Code so wrapped copies produced by WithMessage still compare equal.
func (e Errno) Is(target error) bool {
	var t Errno
	switch typed := target.(type) {
	case Errno:
		t = typed
	case *Errno:
		t = *typed
	default:
		return false
	}
	return e.Code == t.Code
}

// Decode tries to convert an error to Errno
func Decode(err error) Errno {
	if err == nil {
		return OK
	}

	var e Errno
	if errors.As(err, &e) {
		if e.Status == 0 {
			e.Status = http.StatusInternalServerError
		}
		return e
	}
	var pe *Errno
	if errors.As(err, &pe) && pe != nil {
		return Decode(*pe)
	}
	return InternalServerError.WithMessage(ToMessage(err))
}

// ToMessage normalizes anything that was thrown or returned as an error into a string.
// It never panics.
func ToMessage(v any) (msg string) {
	defer func() {
		if r := recover(); r != nil {
			msg = UnknownError
		}
	}()

	switch typed := v.(type) {
	case nil:
		return UnknownError
	case string:
		return orUnknown(typed)
	case error:
		return orUnknown(typed.Error())
	case fmt.Stringer:
		return orUnknown(typed.String())
	case map[string]any:
		for _, key := range []string{"message", "error", "reason"} {
			if s, ok := typed[key].(string); ok && s != "" {
				return s
			}
		}
	}

	raw, err := json.Marshal(v)
	if err != nil || len(raw) == 0 || string(raw) == "null" || string(raw) == "{}" {
		return UnknownError
	}
	return string(raw)
}

func orUnknown(s string) string {
	if s == "" {
		return UnknownError
	}
	return s
}

// Common Errors
var (
	OK                  = Errno{Code: 0, Status: http.StatusOK, Message: "Success"}
	InternalServerError = Errno{Code: 10001, Status: http.StatusInternalServerError, Message: "Internal server error"}
	ErrBind             = Errno{Code: 10002, Status: http.StatusBadRequest, Message: "Error occurred while binding the request body to the struct"}
	ErrInvalidPayload   = Errno{Code: 10003, Status: http.StatusBadRequest, Message: "Invalid request payload"}
)

// Configuration Errors (10100+)
var (
	ErrRelayerNotConfigured = Errno{Code: 10101, Status: http.StatusInternalServerError, Message: "Relayer not configured"}
	ErrDaemonNotConfigured  = Errno{Code: 10102, Status: http.StatusInternalServerError, Message: "Daemon not configured"}
	ErrDAONotConfigured     = Errno{Code: 10103, Status: http.StatusInternalServerError, Message: "DAO address not configured"}
)

// Business Errors (20000+)
var (
	ErrNonceMismatch = Errno{Code: 20101, Status: http.StatusBadRequest, Message: "Nonce mismatch"}
	ErrLedger        = Errno{Code: 20201, Status: http.StatusInternalServerError, Message: "Ledger call failed"}
	ErrRelayFailed   = Errno{Code: 20202, Status: http.StatusInternalServerError, Message: "Failed to relay transaction"}
	ErrExecuteFailed = Errno{Code: 20203, Status: http.StatusInternalServerError, Message: "Failed to execute proposal"}
	ErrSweepFailed   = Errno{Code: 20204, Status: http.StatusInternalServerError, Message: "Daemon execution failed"}
)

// Wrap turns a ledger/network failure into base carrying the underlying message.
func Wrap(base Errno, err error) error {
	if err == nil {
		return nil
	}
	var e Errno
	if errors.As(err, &e) {
		return e
	}
	return base.WithMessage(ToMessage(err))
}
