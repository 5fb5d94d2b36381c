package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"invitation/internal/guestbook"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/hlog"
)

// RecordsStore persists and lists accepted records.
type RecordsStore interface {
	CreateMessage(ctx context.Context, m guestbook.GuestMessage) (uint64, error)
	CreatePreference(ctx context.Context, p guestbook.DrinkPreference) (uint64, error)
	ListMessages(ctx context.Context, limit int) ([]guestbook.GuestMessage, error)
	ListPreferences(ctx context.Context, limit int) ([]guestbook.DrinkPreference, error)
}

type RecordsHandler struct {
	Store    RecordsStore
	Validate *validator.Validate
	Limit    int
}

type createMessageReq struct {
	Name         string     `json:"name" validate:"max=120"`
	Message      string     `json:"message" validate:"required,max=2000"`
	Date         *time.Time `json:"date"`
	InvitationID *string    `json:"invitationId" validate:"omitempty,max=2048"`
}

func (h *RecordsHandler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	var req createMessageReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Message = strings.TrimSpace(req.Message)
	if err := h.Validate.Struct(req); err != nil {
		http.Error(w, describe(err), http.StatusBadRequest)
		return
	}

	m, err := guestbook.NewGuestMessage(guestbook.MessageInput{
		Name:         req.Name,
		Message:      req.Message,
		InvitationID: deref(req.InvitationID),
	}, dateOrNow(req.Date))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id, err := h.Store.CreateMessage(r.Context(), m)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("create message")
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"id": id})
}

type createPreferenceReq struct {
	Name         string     `json:"name" validate:"max=120"`
	Choices      []string   `json:"choices" validate:"required,min=1,max=2,dive,drink"`
	Date         *time.Time `json:"date"`
	InvitationID *string    `json:"invitationId" validate:"omitempty,max=2048"`
}

func (h *RecordsHandler) CreatePreference(w http.ResponseWriter, r *http.Request) {
	var req createPreferenceReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := h.Validate.Struct(req); err != nil {
		http.Error(w, describe(err), http.StatusBadRequest)
		return
	}

	p, err := guestbook.NewDrinkPreference(guestbook.PreferenceInput{
		Name:         req.Name,
		Choices:      req.Choices,
		InvitationID: deref(req.InvitationID),
	}, dateOrNow(req.Date))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id, err := h.Store.CreatePreference(r.Context(), p)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("create preference")
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"id": id})
}

func (h *RecordsHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	out, err := h.Store.ListMessages(r.Context(), h.limit())
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("list messages")
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *RecordsHandler) ListPreferences(w http.ResponseWriter, r *http.Request) {
	out, err := h.Store.ListPreferences(r.Context(), h.limit())
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("list preferences")
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *RecordsHandler) limit() int {
	if h.Limit <= 0 || h.Limit > 1000 {
		return 200
	}
	return h.Limit
}

func dateOrNow(d *time.Time) time.Time {
	if d == nil || d.IsZero() {
		return time.Now()
	}
	return *d
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
