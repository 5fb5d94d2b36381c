package records

import (
	"context"
	"encoding/json"
	"time"

	"invitation/internal/guestbook"
	"invitation/internal/jobs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Service persists submitted records and schedules the owner notification
// in the same transaction.
type Service struct {
	DB *gorm.DB
	// Verify checks an invitation identifier; nil accepts none as verified.
	Verify func(id string) bool
	// OwnerEmail is the notification recipient; empty disables notifications.
	OwnerEmail string
}

func (s *Service) CreateMessage(ctx context.Context, m guestbook.GuestMessage) (uint64, error) {
	row := Message{
		Name:         m.Name,
		Body:         m.Message,
		Date:         m.Date,
		InvitationID: m.InvitationID,
		Verified:     s.verified(m.InvitationID),
		CreatedAt:    time.Now(),
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		return s.enqueueNotify(tx, guestbook.KindMessage, row.ID, m.Name)
	})
	return row.ID, err
}

func (s *Service) CreatePreference(ctx context.Context, p guestbook.DrinkPreference) (uint64, error) {
	choices := make([]string, 0, len(p.Choices))
	for _, d := range p.Choices {
		choices = append(choices, string(d))
	}
	row := Preference{
		Name:         p.Name,
		Choices:      pq.StringArray(choices),
		Date:         p.Date,
		InvitationID: p.InvitationID,
		Verified:     s.verified(p.InvitationID),
		CreatedAt:    time.Now(),
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		return s.enqueueNotify(tx, guestbook.KindPreference, row.ID, p.Name)
	})
	return row.ID, err
}

// ListMessages returns the newest limit messages, newest first.
func (s *Service) ListMessages(ctx context.Context, limit int) ([]guestbook.GuestMessage, error) {
	var rows []Message
	if err := s.DB.WithContext(ctx).Order("created_at desc, id desc").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]guestbook.GuestMessage, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Record())
	}
	return out, nil
}

// ListPreferences returns the newest limit preferences, newest first.
func (s *Service) ListPreferences(ctx context.Context, limit int) ([]guestbook.DrinkPreference, error) {
	var rows []Preference
	if err := s.DB.WithContext(ctx).Order("created_at desc, id desc").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]guestbook.DrinkPreference, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Record())
	}
	return out, nil
}

// Record converts the row to its wire shape. Stored rows are never fallbacks.
func (m Message) Record() guestbook.GuestMessage {
	return guestbook.GuestMessage{
		Base:    guestbook.Base{Name: m.Name, Date: m.Date.UTC(), InvitationID: m.InvitationID},
		Message: m.Body,
	}
}

func (p Preference) Record() guestbook.DrinkPreference {
	choices := make([]guestbook.Drink, 0, len(p.Choices))
	for _, c := range p.Choices {
		choices = append(choices, guestbook.Drink(c))
	}
	return guestbook.DrinkPreference{
		Base:    guestbook.Base{Name: p.Name, Date: p.Date.UTC(), InvitationID: p.InvitationID},
		Choices: choices,
	}
}

func (s *Service) verified(id *string) bool {
	return id != nil && s.Verify != nil && s.Verify(*id)
}

func (s *Service) enqueueNotify(tx *gorm.DB, kind guestbook.Kind, recordID uint64, name string) error {
	if s.OwnerEmail == "" {
		return nil
	}
	payload, err := json.Marshal(jobs.OwnerNotifyPayload{
		Kind:     string(kind),
		RecordID: recordID,
		Guest:    name,
		To:       s.OwnerEmail,
	})
	if err != nil {
		return err
	}
	j := jobs.Job{
		Type:    jobs.TypeOwnerNotify,
		Payload: payload,
		RunAt:   time.Now(),
		Status:  jobs.StatusPending,
	}
	return tx.Create(&j).Error
}
