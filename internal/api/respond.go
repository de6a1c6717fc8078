package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/commerceblock/mainstay-api/internal/attest"
	"github.com/commerceblock/mainstay-api/internal/logger"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response:", err)
	}
}

// writeError renders err in the shared {error, message?} shape. The ctrl
// endpoints reply 200 on errors, as existing clients expect; only internal
// failures get logged.
func writeError(w http.ResponseWriter, err error) {
	var ae *attest.Error
	if !errors.As(err, &ae) {
		ae = attest.ErrAPI(err)
	}
	if ae.Code == attest.CodeAPI && ae.Cause != nil {
		logger.Error("internal error:", ae.Cause)
	}
	writeJSON(w, http.StatusOK, ErrorResponse{Error: ae.Code, Message: ae.Message})
}

// replyType renders a successful classification with its timing.
func replyType(w http.ResponseWriter, label string, start time.Time) {
	writeJSON(w, http.StatusOK, TypeResponse{
		Type:      label,
		Timestamp: time.Now().UnixMilli(),
		Allowance: Allowance{Cost: time.Since(start).Microseconds()},
	})
}

// replyTypeError renders a classification failure; timing is attached to
// every reply regardless of outcome.
func replyTypeError(w http.ResponseWriter, code string, start time.Time) {
	writeJSON(w, http.StatusOK, TypeResponse{
		Error:     code,
		Timestamp: time.Now().UnixMilli(),
		Allowance: Allowance{Cost: time.Since(start).Microseconds()},
	})
}
