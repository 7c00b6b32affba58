package model

import "time"

// Role selects which identity collection an actor lives in.
type Role string

const (
	RoleAuthor Role = "author"
	RoleReader Role = "reader"
)

// Title is the capitalized role name used in client messages.
func (r Role) Title() string {
	switch r {
	case RoleAuthor:
		return "Author"
	case RoleReader:
		return "Reader"
	default:
		return "User"
	}
}

// Actor is an author or a reader. Username holds the email address.
type Actor struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Username     string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Profile is the public view returned by the profile endpoint.
type Profile struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

func (a *Actor) Profile() Profile {
	return Profile{FirstName: a.FirstName, LastName: a.LastName, Email: a.Username}
}
