// Package respond writes the API's JSON bodies, cache headers and error
// envelopes.
package respond

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

// Code is a machine-readable error code. Each code maps to one HTTP status.
type Code string

const (
	CodeInvalidParam        Code = "INVALID_PARAM"
	CodeInvalidLeagueID     Code = "INVALID_LEAGUE_ID"
	CodeInvalidInput        Code = "INVALID_INPUT"
	CodeLeagueNotFound      Code = "LEAGUE_NOT_FOUND"
	CodeMissingTeamData     Code = "MISSING_TEAM_DATA"
	CodeInsufficientHistory Code = "INSUFFICIENT_HISTORY"
	CodeDegenerateStatistic Code = "DEGENERATE_STATISTIC"
	CodeRateLimited         Code = "RATE_LIMITED"
	CodeEncodeFailed        Code = "ENCODE_FAILED"
	CodeInternal            Code = "INTERNAL_ERROR"
)

// Status returns the HTTP status for c. Unknown codes are 500.
func (c Code) Status() int {
	switch c {
	case CodeInvalidParam, CodeInvalidLeagueID, CodeInvalidInput:
		return http.StatusBadRequest
	case CodeLeagueNotFound:
		return http.StatusNotFound
	case CodeMissingTeamData, CodeInsufficientHistory, CodeDegenerateStatistic:
		return http.StatusUnprocessableEntity
	case CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// ErrorBody is the payload inside the error envelope.
type ErrorBody struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// ErrorResponse is the envelope for every API error.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// WriteJSON writes pre-encoded report bytes. ttl 0 marks the body as
// uncacheable (unseeded projections).
func WriteJSON(w http.ResponseWriter, data []byte, etag string, ttl time.Duration, cacheHit bool) {
	h := w.Header()
	h.Set("Content-Type", "application/json")
	h.Set("ETag", etag)
	h.Set("Vary", "Accept-Encoding")
	if cacheHit {
		h.Set("X-Cache", "HIT")
	} else {
		h.Set("X-Cache", "MISS")
	}
	setCacheControl(w, ttl)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// WriteNotModified answers a matching If-None-Match. The freshness headers
// repeat those of the 200 so clients keep the same revalidation window.
func WriteNotModified(w http.ResponseWriter, etag string, ttl time.Duration) {
	w.Header().Set("ETag", etag)
	w.Header().Set("X-Cache", "HIT")
	setCacheControl(w, ttl)
	w.WriteHeader(http.StatusNotModified)
}

// WriteError sends an error envelope with the status implied by code.
func WriteError(w http.ResponseWriter, code Code, message string) {
	WriteErrorDetail(w, code, message, "")
}

// WriteErrorDetail is WriteError with a detail string, usually err.Error().
func WriteErrorDetail(w http.ResponseWriter, code Code, message, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code.Status())
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: ErrorBody{Code: code, Message: message, Detail: detail}})
}

// WriteJSONObject encodes v directly. Used for health checks and root.
func WriteJSONObject(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func setCacheControl(w http.ResponseWriter, ttl time.Duration) {
	maxAge := int(ttl.Seconds())
	if maxAge <= 0 {
		w.Header().Set("Cache-Control", "no-cache")
		return
	}
	w.Header().Set("Cache-Control",
		"public, max-age="+strconv.Itoa(maxAge)+", stale-while-revalidate="+strconv.Itoa(maxAge/2))
}
