package model

import (
	"time"

	"github.com/google/uuid"
)

// Base contains common fields for all persisted records
type Base struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// JSONMap represents a generic JSON object
type JSONMap map[string]interface{}
