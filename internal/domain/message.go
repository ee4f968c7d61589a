package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role distinguishes the two sides of the orienteering conversation.
type Role string

const (
	RoleStudent Role = "student"
	RoleMentor  Role = "mentor"
)

// GroundingLink points at an external source (map or web) the mentor
// used to ground part of a reply.
type GroundingLink struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
	Type  string `json:"type"` // "map" or "web"
}

// Message is a single turn in the conversation. History is append-only;
// the only in-place mutation allowed is attaching Images to an existing
// mentor turn after asynchronous illustration generation completes.
type Message struct {
	ID             string          `json:"id"`
	Role           Role            `json:"role"`
	Text           string          `json:"text"`
	Timestamp      time.Time       `json:"timestamp"`
	GroundingLinks []GroundingLink `json:"groundingLinks,omitempty"`
	Images         []string        `json:"images,omitempty"` // data-URI encoded
}

// NewMessage creates a turn with a fresh stable identifier.
func NewMessage(role Role, text string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		Timestamp: time.Now(),
	}
}
