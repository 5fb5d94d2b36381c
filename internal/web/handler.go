package web

import (
	"context"
	"encoding/json"
	"mime"
	"net/http"
	"net/url"

	"invitation/internal/gateway"
	"invitation/internal/guestbook"
	"invitation/internal/invite"
	"invitation/internal/render"

	"github.com/rs/zerolog/hlog"
)

// Gateway is the submission and retrieval side the handlers depend on.
type Gateway interface {
	SubmitMessage(ctx context.Context, in guestbook.MessageInput) gateway.Result
	SubmitPreference(ctx context.Context, in guestbook.PreferenceInput) gateway.Result
	ListMessages(ctx context.Context) []guestbook.GuestMessage
	ListPreferences(ctx context.Context) []guestbook.DrinkPreference
}

type Handler struct {
	GW       Gateway
	Renderer *render.Renderer
	Event    render.Event
}

// query flags used to report a submission after the redirect
const (
	flagSent  = "sent"
	flagFrom  = "from"
	flagError = "error"

	sentMessage     = "message"
	sentPreferences = "preferences"
)

func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	link := invite.FromQuery(q)

	page := render.Page{
		Event:       h.Event,
		GuestName:   link.GuestName,
		Query:       link.Query(),
		Flash:       flashFrom(q),
		Messages:    h.GW.ListMessages(r.Context()),
		Preferences: h.GW.ListPreferences(r.Context()),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.Renderer.Page(w, page); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("render page")
	}
}

type messageReq struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	link := invite.FromQuery(r.URL.Query())

	var req messageReq
	if isJSON(r) {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
	} else {
		req.Name = r.PostFormValue("name")
		req.Message = r.PostFormValue("message")
	}

	res := h.GW.SubmitMessage(r.Context(), guestbook.MessageInput{
		Name:         req.Name,
		Message:      req.Message,
		InvitationID: link.InvitationID,
	})
	h.respond(w, r, link, sentMessage, res)
}

type preferenceReq struct {
	Name    string   `json:"name"`
	Choices []string `json:"choices"`
}

func (h *Handler) SavePreferences(w http.ResponseWriter, r *http.Request) {
	link := invite.FromQuery(r.URL.Query())

	var req preferenceReq
	if isJSON(r) {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		req.Name = r.PostForm.Get("name")
		req.Choices = r.PostForm["drink"]
	}

	res := h.GW.SubmitPreference(r.Context(), guestbook.PreferenceInput{
		Name:         req.Name,
		Choices:      req.Choices,
		InvitationID: link.InvitationID,
	})
	h.respond(w, r, link, sentPreferences, res)
}

func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.GW.ListMessages(r.Context()))
}

func (h *Handler) ListPreferences(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.GW.ListPreferences(r.Context()))
}

// respond answers JSON clients with the result itself and browsers with a
// redirect back to the page.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, link invite.Link, sent string, res gateway.Result) {
	hlog.FromRequest(r).Info().
		Str("sent", sent).
		Bool("ok", res.OK).
		Str("from", string(res.From)).
		Msg("submission")

	if isJSON(r) {
		status := http.StatusOK
		if !res.OK {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, res)
		return
	}

	q := link.Query()
	q.Set(flagSent, sent)
	if res.OK {
		q.Set(flagFrom, string(res.From))
	} else {
		q.Set(flagError, res.Error)
	}
	http.Redirect(w, r, "/?"+q.Encode(), http.StatusSeeOther)
}

func flashFrom(q url.Values) *render.Flash {
	sent := q.Get(flagSent)
	if sent == "" {
		return nil
	}
	if e := q.Get(flagError); e != "" {
		return &render.Flash{Text: "Erreur: " + e, Error: true}
	}
	from := q.Get(flagFrom)
	switch sent {
	case sentMessage:
		return &render.Flash{Text: "Message enregistré (" + from + ")"}
	case sentPreferences:
		return &render.Flash{Text: "Préférences enregistrées (" + from + ")"}
	default:
		return nil
	}
}

func isJSON(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/json"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
