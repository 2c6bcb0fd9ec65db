// Package server exposes the decision engine over a small JSON HTTP API.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Romz16/ProfitMAX/internal/catalog"
	"github.com/Romz16/ProfitMAX/internal/elasticity"
	"github.com/Romz16/ProfitMAX/internal/planner"
	"github.com/Romz16/ProfitMAX/pkg/abc"
	"github.com/Romz16/ProfitMAX/pkg/constants"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
}

// NewHandler constructs the HTTP handler that serves the optimization API.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxUploadSize: maxUploadSize, version: trimmedVersion}

	mux := http.NewServeMux()

	// Purchase plan optimization over an uploaded catalog snapshot
	mux.HandleFunc("/api/optimize", h.handleOptimize)

	// Elasticity analysis for a single product history
	mux.HandleFunc("/api/elasticity", h.handleElasticity)

	// Version endpoint for client metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type optimizeResponse struct {
	Result   planner.Result       `json:"result"`
	Classes  map[string]abc.Class `json:"abcClasses,omitempty"`
	Warnings []string             `json:"warnings,omitempty"`
	Duration string               `json:"duration"`
}

type elasticityRequest struct {
	History  []catalog.SaleRecord `json:"history" yaml:"history"`
	UnitCost float64              `json:"unit_cost" yaml:"unit_cost"`
}

type elasticityResponse struct {
	Valid  bool               `json:"valid"`
	Reason string             `json:"reason,omitempty"`
	Result *elasticity.Result `json:"result,omitempty"`
}

func (h *handler) handleOptimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}

	var state catalog.State
	if err := decodePayload(r.Header.Get("Content-Type"), body, &state); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode catalog state: %v", err))
		return
	}

	if err := h.applyOverrides(r, &state); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	warnings, err := catalog.ValidateState(state)
	if err != nil {
		h.respondError(w, http.StatusUnprocessableEntity, fmt.Sprintf("invalid catalog state: %v", err))
		return
	}

	result, err := planner.Run(h.logger, state.Products, state.Budget, state.RiskFactor)
	if err != nil {
		h.logger.Error("purchase plan run failed",
			zap.String("op", "server.handleOptimize"),
			zap.Error(err),
		)
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("optimization failed: %v", err))
		return
	}

	h.writeJSON(w, http.StatusOK, optimizeResponse{
		Result:   result,
		Classes:  abc.Classify(state.Products),
		Warnings: warnings,
		Duration: time.Since(start).String(),
	})
}

// applyOverrides lets clients override budget and risk factor via query
// parameters without editing the uploaded snapshot.
func (h *handler) applyOverrides(r *http.Request, state *catalog.State) error {
	if raw := r.URL.Query().Get("budget"); raw != "" {
		budget, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("invalid budget override %q: %v", raw, err)
		}
		state.Budget = budget
	}
	if raw := r.URL.Query().Get("risk"); raw != "" {
		risk, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("invalid risk override %q: %v", raw, err)
		}
		state.RiskFactor = risk
	}
	return nil
}

func (h *handler) handleElasticity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	body, ok := h.readBody(w, r)
	if !ok {
		return
	}

	var req elasticityRequest
	if err := decodePayload(r.Header.Get("Content-Type"), body, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err))
		return
	}
	if req.UnitCost < 0 {
		h.respondError(w, http.StatusUnprocessableEntity, "unit cost cannot be negative")
		return
	}

	result, err := elasticity.Estimate(req.History, req.UnitCost)
	if err != nil {
		// Estimation failures are expected outcomes, not server errors.
		h.writeJSON(w, http.StatusOK, elasticityResponse{Valid: false, Reason: err.Error()})
		return
	}

	h.writeJSON(w, http.StatusOK, elasticityResponse{Valid: true, Result: &result})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// readBody reads the request body subject to the upload size limit.
func (h *handler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r.Body); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize))
			return nil, false
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to read request body: %v", err))
		return nil, false
	}
	return buf.Bytes(), true
}

// decodePayload decodes a JSON or YAML request body depending on the
// declared content type, defaulting to JSON.
func decodePayload(contentType string, body []byte, target interface{}) error {
	mediaType := contentType
	if idx := strings.Index(mediaType, ";"); idx >= 0 {
		mediaType = mediaType[:idx]
	}
	mediaType = strings.TrimSpace(strings.ToLower(mediaType))

	switch mediaType {
	case "application/yaml", "application/x-yaml", "text/yaml":
		return yaml.Unmarshal(body, target)
	default:
		return json.Unmarshal(body, target)
	}
}

func (h *handler) respondError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && h.logger != nil {
		h.logger.Warn("failed to encode response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}
