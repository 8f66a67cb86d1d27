package support

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Ticket struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	IdentityID string             `bson:"identity_id" json:"-"`
	Email      string             `bson:"email" json:"email"`
	Message    string             `bson:"message" json:"message"`
	Status     string             `bson:"status" json:"status"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

const (
	StatusOpen     = "open"
	StatusResolved = "resolved"
)

type SubmitTicketRequest struct {
	Message string `json:"message"`
}

type UpdateTicketRequest struct {
	Status string `json:"status"`
}
