package gateway

import (
	"context"
	"time"

	"invitation/internal/guestbook"
	"invitation/internal/localstore"

	"github.com/rs/zerolog"
)

// Source tells which backend accepted a record.
type Source string

const (
	FromServer Source = "server"
	FromLocal  Source = "local"
)

// Result is what a submission reports back to the guest.
type Result struct {
	OK    bool   `json:"ok"`
	From  Source `json:"from,omitempty"`
	Error string `json:"error,omitempty"`
}

// Endpoints are the remote store URLs per record kind.
type Endpoints struct {
	Messages    string
	Preferences string
}

// Gateway builds records from form input and runs them through the
// per-kind pipelines.
type Gateway struct {
	messages    *Pipeline[guestbook.GuestMessage]
	preferences *Pipeline[guestbook.DrinkPreference]
	now         func() time.Time
}

type Option func(*Gateway)

// WithClock replaces time.Now for record dates.
func WithClock(now func() time.Time) Option {
	return func(g *Gateway) { g.now = now }
}

func New(ep Endpoints, rc Remote, local *localstore.Store, log zerolog.Logger, opts ...Option) *Gateway {
	log = log.With().Str("component", "gateway").Logger()
	g := &Gateway{
		messages:    NewPipeline[guestbook.GuestMessage](ep.Messages, rc, local, log),
		preferences: NewPipeline[guestbook.DrinkPreference](ep.Preferences, rc, local, log),
		now:         time.Now,
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// SubmitMessage validates and stores a guestbook message.
// A blank message is rejected before anything is stored.
func (g *Gateway) SubmitMessage(ctx context.Context, in guestbook.MessageInput) Result {
	m, err := guestbook.NewGuestMessage(in, g.now())
	if err != nil {
		return Result{Error: err.Error()}
	}
	return g.messages.Submit(ctx, m)
}

// SubmitPreference validates and stores a drink preference.
func (g *Gateway) SubmitPreference(ctx context.Context, in guestbook.PreferenceInput) Result {
	p, err := guestbook.NewDrinkPreference(in, g.now())
	if err != nil {
		return Result{Error: err.Error()}
	}
	return g.preferences.Submit(ctx, p)
}

func (g *Gateway) ListMessages(ctx context.Context) []guestbook.GuestMessage {
	return g.messages.List(ctx)
}

func (g *Gateway) ListPreferences(ctx context.Context) []guestbook.DrinkPreference {
	return g.preferences.List(ctx)
}
