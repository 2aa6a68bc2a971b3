package domain

import "time"

type ID string

type Property struct {
	ID          ID        `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	Price       float64   `json:"price"`
	OwnerID     string    `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type NewProperty struct {
	ID          ID
	Title       string
	Description string
	Address     string
	Price       float64
	OwnerID     string
}

type Update struct {
	Title       *string
	Description *string
	Address     *string
	Price       *float64
}
