// Package api wires the core docextract pipeline to an HTTP surface: a
// single extraction endpoint plus a health check, adapted from the
// teacher's Handler/SetupRoutes/sendError shape in api/handler.go.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/docextract/docextract"
	"github.com/docextract/docextract/configs"
	"github.com/docextract/docextract/internal/aienhance"
	"github.com/docextract/docextract/internal/storage"
)

const Version = "1.0.0"

// Handler serves the demo extraction API.
type Handler struct {
	config   *configs.Config
	enhancer aienhance.Enhancer // nil when no AI provider is configured
}

// NewHandler builds a Handler for config, constructing an AI enhancer from
// config.AI when a provider is selected.
func NewHandler(config *configs.Config) *Handler {
	return &Handler{
		config:   config,
		enhancer: buildEnhancer(config.AI),
	}
}

func buildEnhancer(ai configs.AIConfig) aienhance.Enhancer {
	switch ai.DefaultProvider {
	case "gemini":
		if ai.Gemini.APIKey == "" {
			return nil
		}
		return aienhance.NewGeminiEnhancer(ai.Gemini.APIKey, ai.Gemini.Model)
	case "openai":
		if ai.OpenAI.APIKey == "" {
			return nil
		}
		return aienhance.NewOpenAIEnhancer(ai.OpenAI.APIKey, ai.OpenAI.BaseURL, ai.OpenAI.Model)
	default:
		return nil
	}
}

// SetupRoutes configures the demo HTTP routes.
func (h *Handler) SetupRoutes() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/api/parse", h.Parse).Methods("POST")
	router.HandleFunc("/api/records", h.ListRecords).Methods("GET")
	router.HandleFunc("/api/records/{id}", h.GetRecord).Methods("GET")
	router.HandleFunc("/health", h.Health).Methods("GET")
	return router
}

// ParseRequest is the POST /api/parse request body: raw OCR text plus
// optional caller hints mirroring docextract.Options.
type ParseRequest struct {
	Text          string  `json:"text"`
	DocumentType  string  `json:"document_type,omitempty"`
	Language      string  `json:"language,omitempty"`
	OCRConfidence float64 `json:"ocr_confidence,omitempty"`
}

// ParseResponse is the POST /api/parse response body.
type ParseResponse struct {
	ID         string                `json:"id,omitempty"`
	Record     docextract.Record     `json:"record"`
	Confidence docextract.Confidence `json:"confidence"`
	Enhanced   bool                  `json:"enhanced"`
	Warnings   []string              `json:"warnings,omitempty"`
}

// Parse runs the core extraction pipeline over the posted text, optionally
// calling out to an AI enhancer when the resulting confidence falls below
// config.EnhanceThreshold, then persists the record when storage is
// configured.
func (h *Handler) Parse(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req ParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, "invalid JSON request body: "+err.Error())
		return
	}
	if req.Text == "" {
		h.sendError(w, http.StatusBadRequest, "text is required")
		return
	}

	record, err := docextract.Parse(req.Text, docextract.Options{
		DocumentType: req.DocumentType,
		Language:     req.Language,
	})
	if err != nil {
		h.sendError(w, http.StatusInternalServerError, "extraction failed: "+err.Error())
		return
	}

	claimedType := docextract.DocumentType(req.DocumentType)
	score := docextract.Score(record, req.Text, req.OCRConfidence, claimedType)

	var warnings []string
	enhanced := false
	if h.enhancer != nil && score.Overall < h.config.EnhanceThreshold {
		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		before := record
		record, warnings = h.enhancer.Enhance(ctx, record, req.Text)
		enhanced = !recordsEqualJSON(before, record)
		score = docextract.Score(record, req.Text, req.OCRConfidence, claimedType)
	}
	record.Metadata.ConfidenceScore = score.Overall
	record.Metadata.Warnings = append(record.Metadata.Warnings, warnings...)

	response := ParseResponse{
		Record:     record,
		Confidence: score,
		Enhanced:   enhanced,
		Warnings:   warnings,
	}

	if storage.Pool != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		if id, err := storage.SaveRecord(ctx, record); err != nil {
			response.Warnings = append(response.Warnings, "failed to persist record: "+err.Error())
		} else {
			response.ID = id.String()
			if storage.Client != nil {
				if _, err := storage.ArchiveRecord(ctx, id, record); err != nil {
					response.Warnings = append(response.Warnings, "failed to archive record: "+err.Error())
				}
			}
		}
	}

	json.NewEncoder(w).Encode(response)
}

// recordsEqualJSON compares two records by their JSON encoding. It is only
// used to report whether enhancement actually changed anything; an encode
// failure is treated as "no change" rather than propagated as an error.
func recordsEqualJSON(a, b docextract.Record) bool {
	aj, errA := json.Marshal(a)
	bj, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return true
	}
	return string(aj) == string(bj)
}

// ListRecords returns the most recently stored records.
func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if storage.Pool == nil {
		h.sendError(w, http.StatusServiceUnavailable, "no database configured")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	records, err := storage.ListRecords(ctx, 50)
	if err != nil {
		h.sendError(w, http.StatusInternalServerError, "failed to list records: "+err.Error())
		return
	}
	json.NewEncoder(w).Encode(records)
}

// GetRecord returns a single stored record by id.
func (h *Handler) GetRecord(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if storage.Pool == nil {
		h.sendError(w, http.StatusServiceUnavailable, "no database configured")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		h.sendError(w, http.StatusBadRequest, "invalid record id: "+err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	record, err := storage.GetRecord(ctx, id)
	if err != nil {
		h.sendError(w, http.StatusNotFound, "record not found: "+err.Error())
		return
	}
	json.NewEncoder(w).Encode(record)
}

// HealthResponse mirrors the teacher's health check shape, trimmed to the
// dependencies this service actually has (no tesseract/imagemagick: OCR is
// out of scope, spec.md §1).
type HealthResponse struct {
	Status    string        `json:"status"`
	Version   string        `json:"version"`
	Timestamp string        `json:"timestamp"`
	Uptime    string        `json:"uptime"`
	Memory    MemoryStats   `json:"memory"`
	Database  ServiceStatus `json:"database"`
	Storage   ServiceStatus `json:"storage"`
	Enhancer  ServiceStatus `json:"enhancer"`
}

// MemoryStats reports a runtime.MemStats snapshot, matching the teacher's
// api/handler.go formatting.
type MemoryStats struct {
	Allocated string `json:"allocated"`
	Total     string `json:"total"`
	System    string `json:"system"`
}

// ServiceStatus reports whether an optional dependency is configured.
type ServiceStatus struct {
	Available bool   `json:"available"`
	Detail    string `json:"detail,omitempty"`
}

var startTime = time.Now()

// Health reports process uptime and the availability of optional
// dependencies. The core extraction pipeline itself has none, so it is
// never what marks the service degraded.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "healthy",
		Version:   Version,
		Timestamp: time.Now().Format(time.RFC3339),
		Uptime:    time.Since(startTime).String(),
		Memory: MemoryStats{
			Allocated: formatMB(m.Alloc),
			Total:     formatMB(m.TotalAlloc),
			System:    formatMB(m.Sys),
		},
		Database: h.checkDatabase(),
		Storage:  h.checkStorage(),
		Enhancer: h.checkEnhancer(),
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

func formatMB(bytes uint64) string {
	return fmt.Sprintf("%.2f MB", float64(bytes)/1024/1024)
}

func (h *Handler) checkDatabase() ServiceStatus {
	if storage.Pool == nil {
		return ServiceStatus{Available: false, Detail: "no database configured"}
	}
	return ServiceStatus{Available: true, Detail: "PostgreSQL via pgx"}
}

func (h *Handler) checkStorage() ServiceStatus {
	if storage.Client == nil {
		return ServiceStatus{Available: false, Detail: "no object store configured"}
	}
	return ServiceStatus{Available: true, Detail: "MinIO"}
}

func (h *Handler) checkEnhancer() ServiceStatus {
	if h.enhancer == nil {
		return ServiceStatus{Available: false, Detail: "no AI provider configured"}
	}
	return ServiceStatus{Available: true, Detail: h.config.AI.DefaultProvider}
}

// sendError writes a JSON error response.
func (h *Handler) sendError(w http.ResponseWriter, statusCode int, message string) {
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
