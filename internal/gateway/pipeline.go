package gateway

import (
	"context"
	"encoding/json"

	"invitation/internal/guestbook"
	"invitation/internal/localstore"
	"invitation/internal/remote"

	"github.com/rs/zerolog"
)

// Remote is the remote store transport.
type Remote interface {
	Post(ctx context.Context, endpoint string, body []byte) remote.Outcome
	Get(ctx context.Context, endpoint string) remote.Outcome
}

// Pipeline submits and lists one record kind: remote first, local slot second.
type Pipeline[R guestbook.Record[R]] struct {
	endpoint string
	slot     string
	remote   Remote
	local    *localstore.Store
	log      zerolog.Logger
}

func NewPipeline[R guestbook.Record[R]](endpoint string, rc Remote, local *localstore.Store, log zerolog.Logger) *Pipeline[R] {
	var zero R
	kind := zero.Kind()
	return &Pipeline[R]{
		endpoint: endpoint,
		slot:     localstore.SlotFor(kind),
		remote:   rc,
		local:    local,
		log:      log.With().Str("kind", string(kind)).Logger(),
	}
}

// Submit stores rec exactly once: on the remote store, or locally tagged
// as a fallback when the remote leg fails.
func (p *Pipeline[R]) Submit(ctx context.Context, rec R) Result {
	body, err := json.Marshal(rec)
	if err != nil {
		return Result{Error: err.Error()}
	}

	out := p.remote.Post(ctx, p.endpoint, body)
	if remote.OK(out) {
		return Result{OK: true, From: FromServer}
	}
	p.log.Warn().
		Err(out.Err()).
		Str("outcome", remote.Kind(out)).
		Str("endpoint", p.endpoint).
		Msg("remote submit failed, saving locally")

	// the local write must not be abandoned because the remote leg used up the deadline
	if err := localstore.Append(context.WithoutCancel(ctx), p.local, p.slot, rec.WithFallback()); err != nil {
		p.log.Error().Err(err).Msg("local fallback failed")
		return Result{Error: "Impossible d'enregistrer: " + err.Error()}
	}
	return Result{OK: true, From: FromLocal}
}

// List returns the remote collection, or the local one when the remote
// store cannot be read. It never fails.
func (p *Pipeline[R]) List(ctx context.Context) []R {
	out := p.remote.Get(ctx, p.endpoint)
	// a failed GET may have spent the caller's deadline; the local copy is still due
	localCtx := context.WithoutCancel(ctx)
	res, ok := out.(remote.Success)
	if !ok {
		p.log.Debug().Err(out.Err()).Str("outcome", remote.Kind(out)).Msg("remote list failed, using local")
		return localstore.ReadAll[R](localCtx, p.local, p.slot)
	}

	items := []R{}
	if err := json.Unmarshal(res.Body, &items); err != nil {
		p.log.Warn().Err(err).Str("endpoint", p.endpoint).Msg("remote list unreadable, using local")
		return localstore.ReadAll[R](localCtx, p.local, p.slot)
	}
	if items == nil {
		items = []R{}
	}
	return items
}
