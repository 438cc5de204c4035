package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/DanielPopoola/devmarket-ledger/internal/api"
	"github.com/DanielPopoola/devmarket-ledger/internal/application"
	"github.com/DanielPopoola/devmarket-ledger/internal/domain"
)

// MaxBodyBytes caps request bodies, webhooks included.
const MaxBodyBytes = 1 << 20

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteError maps err onto the uniform error body. Internal causes are logged
// and never echoed.
func WriteError(w http.ResponseWriter, err error, logger *slog.Logger) {
	status := application.ToHTTPStatus(err)
	code := application.ToErrorCode(err)

	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "code", code, "status", status, "error", err)
	} else {
		logger.Debug("request rejected", "code", code, "status", status, "error", err)
	}

	WriteJSON(w, status, api.ErrorResponse{
		Error: publicMessage(err, status),
		Code:  code,
	})
}

func publicMessage(err error, status int) string {
	if svcErr, ok := application.IsServiceError(err); ok {
		return svcErr.Message
	}
	var domainErr *domain.DomainError
	if status < http.StatusInternalServerError && errors.As(err, &domainErr) && domainErr.Message != "" {
		return domainErr.Message
	}
	if status < http.StatusInternalServerError {
		return http.StatusText(status)
	}
	return "An internal error occurred"
}

// DecodeJSON reads a JSON body into dst, rejecting unknown trailing data.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return application.NewInvalidPayloadError(fmt.Errorf("decode request body: %w", err))
	}
	if dec.More() {
		return application.NewInvalidPayloadError(errors.New("request body must hold a single JSON object"))
	}
	return nil
}

// ReadBody returns the raw body bytes, untouched.
func ReadBody(r *http.Request) ([]byte, error) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes+1))
	if err != nil {
		return nil, application.NewInvalidPayloadError(fmt.Errorf("read request body: %w", err))
	}
	if len(raw) > MaxBodyBytes {
		return nil, application.NewInvalidPayloadError(errors.New("request body too large"))
	}
	return raw, nil
}
