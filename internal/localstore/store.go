package localstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"invitation/internal/guestbook"

	"github.com/rs/zerolog"
)

// Slot names, one per record kind.
const (
	MessagesSlot    = "inv_messages"
	PreferencesSlot = "inv_prefs"
)

// Slots is a persistent key-value area. Get reports ok=false for an absent key.
type Slots interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Put(ctx context.Context, key string, value []byte) error
}

// SlotFor returns the slot holding records of kind k.
func SlotFor(k guestbook.Kind) string {
	switch k {
	case guestbook.KindPreference:
		return PreferencesSlot
	default:
		return MessagesSlot
	}
}

// Store keeps one newest-first JSON array of records per slot.
// Appends are serialized so the read-modify-write stays whole within a process.
type Store struct {
	slots      Slots
	maxRecords int
	log        zerolog.Logger

	mu sync.Mutex
}

type Option func(*Store)

// WithMaxRecords drops the oldest entries beyond n on append. n <= 0 keeps everything.
func WithMaxRecords(n int) Option {
	return func(s *Store) { s.maxRecords = n }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

func New(slots Slots, opts ...Option) *Store {
	s := &Store{slots: slots, log: zerolog.Nop()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Append prepends rec to the sequence stored under slot.
func Append[R any](ctx context.Context, s *Store, slot string, rec R) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.read(ctx, slot)
	if err != nil {
		return err
	}

	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	items = append([]json.RawMessage{b}, items...)
	if s.maxRecords > 0 && len(items) > s.maxRecords {
		items = items[:s.maxRecords]
	}

	out, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode slot %s: %w", slot, err)
	}
	if err := s.slots.Put(ctx, slot, out); err != nil {
		return fmt.Errorf("write slot %s: %w", slot, err)
	}
	return nil
}

// ReadAll decodes the sequence stored under slot. Absent or unreadable
// content yields an empty sequence.
func ReadAll[R any](ctx context.Context, s *Store, slot string) []R {
	s.mu.Lock()
	raw, err := s.read(ctx, slot)
	s.mu.Unlock()
	if err != nil {
		s.log.Warn().Err(err).Str("slot", slot).Msg("slot unreadable, treating as empty")
	}

	out := make([]R, 0, len(raw))
	for _, item := range raw {
		var r R
		if err := json.Unmarshal(item, &r); err != nil {
			s.log.Warn().Err(err).Str("slot", slot).Msg("skipping unreadable entry")
			continue
		}
		out = append(out, r)
	}
	return out
}

// read returns the raw entries under slot. Content that cannot be decoded
// counts as empty; a failure to fetch it is an error, so Append never
// overwrites entries it could not see.
func (s *Store) read(ctx context.Context, slot string) ([]json.RawMessage, error) {
	b, ok, err := s.slots.Get(ctx, slot)
	if err != nil {
		return nil, fmt.Errorf("read slot %s: %w", slot, err)
	}
	if !ok || len(b) == 0 {
		return nil, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(b, &items); err != nil {
		s.log.Warn().Err(err).Str("slot", slot).Msg("slot corrupt, treating as empty")
		return nil, nil
	}
	return items, nil
}
