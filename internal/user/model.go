package user

import "time"

// User is one directory record. The identity provider (or the local
// credential helpers in auth.go) writes it on each successful login.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	CreatedAt   time.Time `json:"createdAt"`
	LastLogin   time.Time `json:"lastLogin"`
	LoginCount  int       `json:"loginCount"`
	IsActive    bool      `json:"isActive"`

	// PasswordHash is only set for locally registered accounts.
	PasswordHash string `json:"passwordHash,omitempty"`
}

// Public returns a copy safe to hand to transports.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}
