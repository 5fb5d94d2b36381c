package localstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"invitation/internal/guestbook"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func message(t *testing.T, name, text string) guestbook.GuestMessage {
	t.Helper()
	m, err := guestbook.NewGuestMessage(guestbook.MessageInput{Name: name, Message: text}, time.Now())
	require.NoError(t, err)
	return m
}

func backends(t *testing.T) map[string]Slots {
	t.Helper()
	sq, err := OpenSQLiteSlots(filepath.Join(t.TempDir(), "local.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sq.Close() })

	return map[string]Slots{
		"file":   NewFileSlots(t.TempDir()),
		"sqlite": sq,
	}
}

func TestAppendIsNewestFirst(t *testing.T) {
	ctx := context.Background()
	for name, slots := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := New(slots)
			r1 := message(t, "Alice", "first")
			r2 := message(t, "Bob", "second")

			require.NoError(t, Append(ctx, s, MessagesSlot, r1))
			require.NoError(t, Append(ctx, s, MessagesSlot, r2))

			got := ReadAll[guestbook.GuestMessage](ctx, s, MessagesSlot)
			require.Len(t, got, 2)
			assert.Equal(t, "second", got[0].Message)
			assert.Equal(t, "first", got[1].Message)
		})
	}
}

func TestAppendKeepsDuplicates(t *testing.T) {
	ctx := context.Background()
	s := New(NewFileSlots(t.TempDir()))
	r := message(t, "Alice", "same")

	require.NoError(t, Append(ctx, s, MessagesSlot, r))
	require.NoError(t, Append(ctx, s, MessagesSlot, r))

	assert.Len(t, ReadAll[guestbook.GuestMessage](ctx, s, MessagesSlot), 2)
}

func TestSlotsAreSeparatedByKind(t *testing.T) {
	ctx := context.Background()
	s := New(NewFileSlots(t.TempDir()))

	require.NoError(t, Append(ctx, s, SlotFor(guestbook.KindMessage), message(t, "A", "hi")))

	assert.Empty(t, ReadAll[guestbook.DrinkPreference](ctx, s, SlotFor(guestbook.KindPreference)))
	assert.Equal(t, PreferencesSlot, SlotFor(guestbook.KindPreference))
}

func TestReadAllAbsentSlot(t *testing.T) {
	ctx := context.Background()
	for name, slots := range backends(t) {
		t.Run(name, func(t *testing.T) {
			got := ReadAll[guestbook.GuestMessage](ctx, New(slots), MessagesSlot)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestCorruptSlotReadsAsEmpty(t *testing.T) {
	ctx := context.Background()
	for name, slots := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, slots.Put(ctx, MessagesSlot, []byte("{not json")))
			s := New(slots)

			assert.Empty(t, ReadAll[guestbook.GuestMessage](ctx, s, MessagesSlot))

			require.NoError(t, Append(ctx, s, MessagesSlot, message(t, "Alice", "after")))
			got := ReadAll[guestbook.GuestMessage](ctx, s, MessagesSlot)
			require.Len(t, got, 1)
			assert.Equal(t, "after", got[0].Message)
		})
	}
}

func TestMaxRecordsDropsOldest(t *testing.T) {
	ctx := context.Background()
	s := New(NewFileSlots(t.TempDir()), WithMaxRecords(2))

	for _, text := range []string{"one", "two", "three"} {
		require.NoError(t, Append(ctx, s, MessagesSlot, message(t, "", text)))
	}

	got := ReadAll[guestbook.GuestMessage](ctx, s, MessagesSlot)
	require.Len(t, got, 2)
	assert.Equal(t, "three", got[0].Message)
	assert.Equal(t, "two", got[1].Message)
}

// flakySlots fails the next failGets reads and delegates everything else.
type flakySlots struct {
	Slots
	failGets int
}

func (f *flakySlots) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if f.failGets > 0 {
		f.failGets--
		return nil, false, errors.New("database is locked")
	}
	return f.Slots.Get(ctx, key)
}

func TestAppendKeepsEntriesWhenReadFails(t *testing.T) {
	ctx := context.Background()
	slots := &flakySlots{Slots: NewFileSlots(t.TempDir())}
	s := New(slots)
	for _, name := range []string{"Alice", "Bob", "Carol"} {
		require.NoError(t, Append(ctx, s, MessagesSlot, message(t, name, "hello")))
	}

	slots.failGets = 1
	err := Append(ctx, s, MessagesSlot, message(t, "Dan", "hello"))
	assert.ErrorContains(t, err, "database is locked")

	got := ReadAll[guestbook.GuestMessage](ctx, s, MessagesSlot)
	require.Len(t, got, 3)
	assert.Equal(t, "Carol", got[0].Name)
}

func TestReadAllTreatsReadFailureAsEmpty(t *testing.T) {
	ctx := context.Background()
	slots := &flakySlots{Slots: NewFileSlots(t.TempDir())}
	s := New(slots)
	require.NoError(t, Append(ctx, s, MessagesSlot, message(t, "Alice", "hello")))

	slots.failGets = 1
	assert.Empty(t, ReadAll[guestbook.GuestMessage](ctx, s, MessagesSlot))
	assert.Len(t, ReadAll[guestbook.GuestMessage](ctx, s, MessagesSlot), 1)
}
