package invite

import (
	"fmt"
	"net/url"
	"strings"
)

// Link parameter names of a personalized invitation URL.
const (
	ParamID    = "id"
	ParamGuest = "to"
)

// Link is what a guest's personalized URL carries.
type Link struct {
	InvitationID string
	GuestName    string
}

func FromQuery(q url.Values) Link {
	return Link{
		InvitationID: strings.TrimSpace(q.Get(ParamID)),
		GuestName:    strings.TrimSpace(q.Get(ParamGuest)),
	}
}

// Query returns the non-empty parameters of l.
func (l Link) Query() url.Values {
	q := url.Values{}
	if l.InvitationID != "" {
		q.Set(ParamID, l.InvitationID)
	}
	if l.GuestName != "" {
		q.Set(ParamGuest, l.GuestName)
	}
	return q
}

// URL appends the link parameters to base, keeping any query base already has.
func (l Link) URL(base string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	q := u.Query()
	for k, v := range l.Query() {
		q[k] = v
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
