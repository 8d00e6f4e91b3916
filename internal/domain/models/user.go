// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user can hold. Every user is a participant unless an
// organizer promoted them (or the organizer bootstrap did at startup).
const (
	RoleOrganizer   = "organizer"
	RoleParticipant = "participant"
)

// User represents an account created on first sign-in.
//
// NOTE:
//   - Email is the unique key; the users collection carries a unique
//     index on it so concurrent first sign-ins cannot double-insert.
//   - Role may be unset on documents written before roles existed;
//     readers must treat an empty role as participant.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email    string             `bson:"email" json:"email"`
	Name     string             `bson:"name" json:"name"`
	PhotoURL string             `bson:"photo_url,omitempty" json:"photo_url,omitempty"`
	Role     string             `bson:"role,omitempty" json:"role,omitempty"` // organizer | participant

	LastSignInAt *time.Time `bson:"last_sign_in_at,omitempty" json:"last_sign_in_at,omitempty"`
	CreatedAt    time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `bson:"updated_at" json:"updated_at"`
}

// EffectiveRole returns the user's role, defaulting to participant
// when the role field was never set.
func (u User) EffectiveRole() string {
	if u.Role == "" {
		return RoleParticipant
	}
	return u.Role
}
