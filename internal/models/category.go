package models

import "time"

// Category groups products
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CategoryInput carries client supplied category fields; nil means the field was not sent
type CategoryInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}
