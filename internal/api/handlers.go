// Package api exposes the HTTP handlers for the workout tracker.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"example.com/workout/internal/auth"
	"example.com/workout/internal/domain"
)

// Handler coordinates HTTP requests with the domain service.
type Handler struct {
	service  *domain.Service
	tokens   auth.Config
	tokenTTL time.Duration
}

// NewHandler builds a Handler. tokenTTL bounds the lifetime of tokens issued
// at login.
func NewHandler(service *domain.Service, tokens auth.Config, tokenTTL time.Duration) *Handler {
	return &Handler{service: service, tokens: tokens, tokenTTL: tokenTTL}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/auth/register", h.register)
	mux.HandleFunc("/auth/login", h.login)
	mux.HandleFunc("/auth/me", h.me)
	mux.HandleFunc("/categories", h.categories)
	mux.HandleFunc("/categories/", h.categoryByID)
	mux.HandleFunc("/exercises", h.exercises)
	mux.HandleFunc("/exercises/", h.exerciseByID)
	mux.HandleFunc("/records", h.records)
	mux.HandleFunc("/records/", h.recordByID)
	mux.HandleFunc("/stats", h.stats)
	mux.HandleFunc("/healthz", healthz)
	mux.HandleFunc("/", root)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// root answers the original tracker's health message; anything else under
// "/" is unrouted.
func root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "not_found", "no such route")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Workout Tracker API is running",
	})
}

// ========== Auth ==========

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_failed", err.Error())
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", "internal error")
		return
	}

	user, err := h.service.Register(r.Context(), req.Email, hash)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			writeError(w, http.StatusBadRequest, "duplicate_email", "email is already registered")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error", "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, toUserView(*user))
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_failed", err.Error())
		return
	}

	user, err := h.service.UserByEmail(r.Context(), req.Email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusInternalServerError, "server_error", "internal error")
		return
	}
	// A missing user and a wrong password answer identically.
	if user == nil || !auth.VerifyPassword(req.Password, user.PasswordHash) {
		writeUnauthorized(w, "invalid_credentials", "email or password is incorrect")
		return
	}

	token, err := auth.Issue(user.ID, h.tokens, h.tokenTTL)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	ownerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "unauthorized", "missing bearer token")
		return
	}

	user, err := h.service.UserByID(r.Context(), ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeUnauthorized(w, "unauthorized", "account no longer exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toUserView(*user))
}

// ========== Categories ==========

func (h *Handler) categories(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "unauthorized", "missing bearer token")
		return
	}

	switch r.Method {
	case http.MethodGet:
		categories, err := h.service.ListCategories(r.Context(), ownerID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "server_error", "internal error")
			return
		}
		views := make([]CategoryView, 0, len(categories))
		for _, category := range categories {
			views = append(views, toCategoryView(category))
		}
		writeJSON(w, http.StatusOK, views)
	case http.MethodPost:
		var req CategoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
			return
		}
		if err := req.Validate(); err != nil {
			writeError(w, http.StatusUnprocessableEntity, "validation_failed", err.Error())
			return
		}
		category, err := h.service.CreateCategory(r.Context(), ownerID, req.Name)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "server_error", "internal error")
			return
		}
		writeJSON(w, http.StatusCreated, toCategoryView(*category))
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

func (h *Handler) categoryByID(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "unauthorized", "missing bearer token")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/categories/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "missing category id")
		return
	}

	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	if err := h.service.DeleteCategory(r.Context(), ownerID, id); err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

// ========== Exercises ==========

func (h *Handler) exercises(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "unauthorized", "missing bearer token")
		return
	}

	switch r.Method {
	case http.MethodGet:
		exercises, err := h.service.ListExercises(r.Context(), ownerID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "server_error", "internal error")
			return
		}
		views := make([]ExerciseView, 0, len(exercises))
		for _, exercise := range exercises {
			views = append(views, toExerciseView(exercise))
		}
		writeJSON(w, http.StatusOK, views)
	case http.MethodPost:
		var req ExerciseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
			return
		}
		if err := req.Validate(); err != nil {
			writeError(w, http.StatusUnprocessableEntity, "validation_failed", err.Error())
			return
		}
		exercise, err := h.service.CreateExercise(r.Context(), ownerID, req.Name, req.CategoryID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "server_error", "internal error")
			return
		}
		writeJSON(w, http.StatusCreated, toExerciseView(*exercise))
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

func (h *Handler) exerciseByID(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "unauthorized", "missing bearer token")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/exercises/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "missing exercise id")
		return
	}

	switch r.Method {
	case http.MethodPut:
		var req ExerciseUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
			return
		}
		exercise, err := h.service.UpdateExerciseCategory(r.Context(), ownerID, id, req.CategoryID)
		if err != nil {
			h.writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toExerciseView(*exercise))
	case http.MethodDelete:
		if err := h.service.DeleteExercise(r.Context(), ownerID, id); err != nil {
			h.writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

// ========== Records ==========

func (h *Handler) records(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "unauthorized", "missing bearer token")
		return
	}

	switch r.Method {
	case http.MethodGet:
		records, err := h.service.ListRecords(r.Context(), ownerID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "server_error", "internal error")
			return
		}
		views := make([]RecordView, 0, len(records))
		for _, record := range records {
			views = append(views, toRecordView(record))
		}
		writeJSON(w, http.StatusOK, views)
	case http.MethodPost:
		var req RecordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
			return
		}
		if err := req.Validate(); err != nil {
			writeError(w, http.StatusUnprocessableEntity, "validation_failed", err.Error())
			return
		}
		record, err := h.service.CreateRecord(r.Context(), domain.CreateRecordInput{
			OwnerID:    ownerID,
			Date:       req.Date,
			ExerciseID: req.ExerciseID,
			Weight:     req.Weight,
			Reps:       req.Reps,
			Sets:       req.Sets,
			Memo:       req.Memo,
		})
		if err != nil {
			h.writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toRecordView(*record))
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

func (h *Handler) recordByID(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "unauthorized", "missing bearer token")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/records/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "missing record id")
		return
	}

	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	if err := h.service.DeleteRecord(r.Context(), ownerID, id); err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

// ========== Stats ==========

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	ownerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "unauthorized", "missing bearer token")
		return
	}

	stats, err := h.service.Stats(r.Context(), ownerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, StatsView{
		TotalWorkouts: stats.TotalWorkouts,
		TotalVolume:   stats.TotalVolume,
		MaxWeight:     stats.MaxWeight,
	})
}

func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "resource not found")
	case errors.Is(err, domain.ErrDuplicateEmail):
		writeError(w, http.StatusBadRequest, "duplicate_email", "email is already registered")
	default:
		writeError(w, http.StatusInternalServerError, "server_error", "internal error")
	}
}
