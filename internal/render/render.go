// Package render turns guestbook records into HTML. All record text is
// untrusted and goes through html/template's contextual escaping.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"time"

	"invitation/internal/guestbook"
)

//go:embed templates/*.html
var templateFS embed.FS

const dateLayout = "02/01/2006 15:04"

// Event is the static part of the invitation.
type Event struct {
	Couple string
	Venue  string
	Date   time.Time
}

// Flash is the one-shot notice shown after a submission.
type Flash struct {
	Text  string
	Error bool
}

// Page is everything the invitation page shows.
type Page struct {
	Event       Event
	GuestName   string
	Flash       *Flash
	Messages    []guestbook.GuestMessage
	Preferences []guestbook.DrinkPreference
	Drinks      []guestbook.Drink
	// Link parameters to carry over to the form actions.
	Query url.Values
}

type Renderer struct {
	tmpl *template.Template
}

// New parses the embedded templates. Dates are shown in loc (time.Local if nil).
func New(loc *time.Location) (*Renderer, error) {
	if loc == nil {
		loc = time.Local
	}
	funcs := template.FuncMap{
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.In(loc).Format(dateLayout)
		},
	}
	tmpl, err := template.New("render").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

func (r *Renderer) Messages(w io.Writer, items []guestbook.GuestMessage) error {
	return r.tmpl.ExecuteTemplate(w, "messages", items)
}

func (r *Renderer) Preferences(w io.Writer, items []guestbook.DrinkPreference) error {
	return r.tmpl.ExecuteTemplate(w, "preferences", items)
}

func (r *Renderer) Page(w io.Writer, p Page) error {
	if p.Drinks == nil {
		p.Drinks = guestbook.Drinks()
	}
	return r.tmpl.ExecuteTemplate(w, "page", p)
}

func (p Page) MessagesAction() string    { return withQuery("/messages", p.Query) }
func (p Page) PreferencesAction() string { return withQuery("/preferences", p.Query) }

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
