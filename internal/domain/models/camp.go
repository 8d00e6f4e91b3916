// internal/domain/models/camp.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Camp is one medical camp open for registration.
//
// ParticipantCount is maintained exclusively by the registration store:
// +1 on register, -1 on cancel, both inside the same logical unit as the
// registration write. It must always equal the number of live
// registrations referencing this camp and can never go below zero.
type Camp struct {
	ID                     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name                   string             `bson:"name" json:"name"`
	Description            string             `bson:"description,omitempty" json:"description,omitempty"`
	Location               string             `bson:"location" json:"location"`
	DateTime               string             `bson:"date_time" json:"date_time"`
	Fees                   int64              `bson:"fees" json:"fees"` // cents
	HealthcareProfessional string             `bson:"healthcare_professional,omitempty" json:"healthcare_professional,omitempty"`
	ImageURL               string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
	ParticipantCount       int64              `bson:"participant_count" json:"participant_count"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
