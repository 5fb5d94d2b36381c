package records

import (
	"time"

	"github.com/lib/pq"
)

// Message is a guestbook entry accepted by the API. Rows are append-only.
type Message struct {
	ID           uint64    `gorm:"primaryKey"`
	Name         string    `gorm:"type:text;not null"`
	Body         string    `gorm:"column:message;type:text;not null"`
	Date         time.Time `gorm:"type:timestamptz;not null"`
	InvitationID *string   `gorm:"type:text;index"`
	Verified     bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time `gorm:"index;not null;default:now()"`
}

// Preference is a drink choice accepted by the API. Rows are append-only.
type Preference struct {
	ID           uint64         `gorm:"primaryKey"`
	Name         string         `gorm:"type:text;not null"`
	Choices      pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	Date         time.Time      `gorm:"type:timestamptz;not null"`
	InvitationID *string        `gorm:"type:text;index"`
	Verified     bool           `gorm:"not null;default:false"`
	CreatedAt    time.Time      `gorm:"index;not null;default:now()"`
}
