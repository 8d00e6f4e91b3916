// internal/domain/models/feedback.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Feedback is an append-only note left by an authenticated user after a
// camp. Content is sanitized HTML (UGC policy) by the handler before it
// reaches the store.
type Feedback struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email   string             `bson:"email" json:"email"`
	Name    string             `bson:"name,omitempty" json:"name,omitempty"`
	Rating  int                `bson:"rating,omitempty" json:"rating,omitempty"` // 1-5, 0 when not given
	Content string             `bson:"content" json:"content"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
