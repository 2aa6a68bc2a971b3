package domain

import "time"

type ID string

// User is the stored account record. PasswordHash never leaves the store
// boundary; anything serialized outward uses Summary.
type User struct {
	ID           ID
	FullName     string
	Email        string
	Address      string
	PasswordHash string
	CreatedAt    time.Time
}

type Summary struct {
	ID        ID        `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

func (u User) Summary() Summary {
	return Summary{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Address:   u.Address,
		CreatedAt: u.CreatedAt,
	}
}

// NewUser holds the fields required to create an account. The password here is
// already hashed; raw passwords stop at the auth service.
type NewUser struct {
	ID           ID
	FullName     string
	Email        string
	Address      string
	PasswordHash string
}

type Update struct {
	FullName *string
	Email    *string
	Address  *string
}
