package guestbook

import (
	"errors"
	"strings"
	"time"
)

// AnonymousName replaces an empty guest name.
const AnonymousName = "Anonyme"

// Kind names one of the two record kinds.
type Kind string

const (
	KindMessage    Kind = "message"
	KindPreference Kind = "preference"
)

// The texts of these errors are shown to guests as-is.
var (
	ErrEmptyMessage = errors.New("Message vide")
	ErrNoChoices    = errors.New("No choices")
	ErrUnknownDrink = errors.New("unknown drink")
)

// Record is implemented by GuestMessage and DrinkPreference.
// R is the concrete type so that WithFallback can return it unboxed.
type Record[R any] interface {
	Kind() Kind
	WithFallback() R
}

// Base holds the fields shared by every record kind.
type Base struct {
	Name         string    `json:"name"`
	Date         time.Time `json:"date"`
	InvitationID *string   `json:"invitationId"`
	// Fallback is set only on records persisted locally after the remote leg failed.
	Fallback bool `json:"fallback,omitempty"`
}

func newBase(name, invitationID string, now time.Time) Base {
	b := Base{
		Name: strings.TrimSpace(name),
		Date: now.UTC().Truncate(time.Millisecond),
	}
	if b.Name == "" {
		b.Name = AnonymousName
	}
	if id := strings.TrimSpace(invitationID); id != "" {
		b.InvitationID = &id
	}
	return b
}

// GuestMessage is a guestbook entry.
type GuestMessage struct {
	Base
	Message string `json:"message"`
}

type MessageInput struct {
	Name         string
	Message      string
	InvitationID string
}

// NewGuestMessage validates the form input and stamps the record with now.
func NewGuestMessage(in MessageInput, now time.Time) (GuestMessage, error) {
	msg := strings.TrimSpace(in.Message)
	if msg == "" {
		return GuestMessage{}, ErrEmptyMessage
	}
	return GuestMessage{
		Base:    newBase(in.Name, in.InvitationID, now),
		Message: msg,
	}, nil
}

func (GuestMessage) Kind() Kind { return KindMessage }

func (m GuestMessage) WithFallback() GuestMessage {
	m.Fallback = true
	return m
}

// DrinkPreference records up to two drinks a guest would like served.
type DrinkPreference struct {
	Base
	Choices []Drink `json:"choices"`
}

type PreferenceInput struct {
	Name         string
	Choices      []string
	InvitationID string
}

// NewDrinkPreference validates the choices and applies the two-drink cap in input order.
func NewDrinkPreference(in PreferenceInput, now time.Time) (DrinkPreference, error) {
	sel := &Selection{}
	for _, c := range in.Choices {
		d, err := ParseDrink(c)
		if err != nil {
			return DrinkPreference{}, err
		}
		sel.Select(d)
	}
	if len(sel.active) == 0 {
		return DrinkPreference{}, ErrNoChoices
	}
	return DrinkPreference{
		Base:    newBase(in.Name, in.InvitationID, now),
		Choices: sel.Active(),
	}, nil
}

func (DrinkPreference) Kind() Kind { return KindPreference }

func (p DrinkPreference) WithFallback() DrinkPreference {
	p.Fallback = true
	p.Choices = append([]Drink(nil), p.Choices...)
	return p
}
