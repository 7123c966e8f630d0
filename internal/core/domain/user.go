package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ValidRole reports whether r is one of the two known roles.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleUser
}

// User models an account in the system. PasswordHash is never serialized
// to clients; repositories additionally project it out of list queries.
type User struct {
	ID                      string    `json:"id"`
	Name                    string    `json:"name"`
	Email                   string    `json:"email"`
	PasswordHash            string    `json:"-"`
	Role                    string    `json:"role"`
	IsBanned                bool      `json:"isBanned"`
	IsVerified              bool      `json:"isVerified"`
	VerificationToken       string    `json:"-"`
	VerificationTokenExpiry time.Time `json:"-"`
	CreatedAt               time.Time `json:"createdAt"`
}
