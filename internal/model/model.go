// Package model contains domain entities and DTOs used across layers.
// I keep it lean and focused on data shapes without behavior.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Feedback is a single submission left by a visitor.
type Feedback struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Feedback  string    `json:"feedback"`
	CreatedAt time.Time `json:"createdAt"`
}
