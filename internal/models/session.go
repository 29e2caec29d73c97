package models

import "time"

// Session associates an opaque token (delivered via cookie) with a snapshot
// of the user's public fields taken at login. It is deliberately not a
// foreign key into User: the auth context is only as fresh as the last login.
type Session struct {
	Token          string    `json:"-" gorm:"primaryKey;type:varchar(36)"`
	UserID         string    `json:"id" gorm:"index;type:varchar(36)"`
	Username       string    `json:"username" gorm:"type:varchar(100)"`
	FirstName      string    `json:"firstName" gorm:"type:varchar(100)"`
	LastName       string    `json:"lastName" gorm:"type:varchar(100)"`
	Role           string    `json:"role" gorm:"type:varchar(10)"`
	Personalnummer string    `json:"personalnummer" gorm:"type:varchar(10)"`
	Abteilung      string    `json:"abteilung" gorm:"type:varchar(100)"`
	CreatedAt      time.Time `json:"-"`
	ExpiresAt      time.Time `json:"-" gorm:"index"`
}

// Expired reports whether the session's TTL has elapsed at the given instant.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// IsAdmin reports whether the session was established by an ADMIN user.
func (s *Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// NewSession snapshots the user's public fields into a session valid for ttl.
func NewSession(token string, user *User, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		Token:          token,
		UserID:         user.ID,
		Username:       user.Username,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		Role:           user.Role,
		Personalnummer: user.Personalnummer,
		Abteilung:      user.Abteilung,
		CreatedAt:      now,
		ExpiresAt:      now.Add(ttl),
	}
}
