package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleCashier = "cashier"
	RoleAdmin   = "admin"
)

// User stores login credentials. It is deliberately separate from Profile:
// sign-up writes the two rows independently and compensates by deleting the
// user when the profile insert fails.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile carries the POS-facing identity attributes. ID matches the User id.
// ActiveSessionToken identifies the most recent sign-in; older sessions on the
// same account detect the rotation and terminate themselves.
type Profile struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FullName           string    `gorm:"not null" json:"full_name"`
	Role               string    `gorm:"type:varchar(20);not null;default:'cashier'" json:"role"`
	Approved           bool      `gorm:"not null;default:false" json:"approved"`
	ActiveSessionToken *string   `json:"active_session_token,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
