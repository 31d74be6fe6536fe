package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Dan9191/rental-analytics/internal/export"
	"github.com/Dan9191/rental-analytics/internal/models"
	"github.com/Dan9191/rental-analytics/internal/repository"
	"github.com/Dan9191/rental-analytics/internal/service"
)

// Analytics is the service surface the handlers depend on
type Analytics interface {
	ForecastReport(ctx context.Context, now time.Time) (*models.ForecastReport, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type Handler struct {
	svc Analytics
	log *logrus.Logger
	now func() time.Time
}

func NewHandler(svc Analytics, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log, now: time.Now}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles operator authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Forecast returns the revenue forecast and vacancy risk report, as JSON or with format=xml as XML
func (h *Handler) Forecast(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.ForecastReport(r.Context(), h.now())
	if err != nil {
		h.fail(w, err)
		return
	}

	if r.URL.Query().Get("format") != "xml" {
		writeJSON(w, http.StatusOK, report)
		return
	}

	body, err := export.ReportXML(report)
	if err != nil {
		h.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, repository.ErrDataUnavailable):
		h.log.Warnf("Analytics data unavailable: %v", err)
		writeError(w, http.StatusServiceUnavailable, "analytics data is temporarily unavailable")
	default:
		h.log.Errorf("Request failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
