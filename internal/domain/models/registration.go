// internal/domain/models/registration.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment status values for a registration.
const (
	PaymentUnpaid = "unpaid"
	PaymentPaid   = "paid"
)

// Confirmation status values for a registration.
const (
	ConfirmationPending   = "pending"
	ConfirmationConfirmed = "confirmed"
)

// Registration is a participant's claim on a camp slot.
//
// The status pair starts at {unpaid, pending} and flips to
// {paid, confirmed} exactly once, when a payment is recorded. The two
// fields always move together; there is no {paid, pending} state.
type Registration struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CampID   primitive.ObjectID `bson:"camp_id" json:"camp_id"`
	CampName string             `bson:"camp_name,omitempty" json:"camp_name,omitempty"`
	Email    string             `bson:"email" json:"email"`

	ParticipantName  string `bson:"participant_name" json:"participant_name"`
	Age              int    `bson:"age,omitempty" json:"age,omitempty"`
	Phone            string `bson:"phone,omitempty" json:"phone,omitempty"`
	Gender           string `bson:"gender,omitempty" json:"gender,omitempty"`
	EmergencyContact string `bson:"emergency_contact,omitempty" json:"emergency_contact,omitempty"`

	PaymentStatus      string    `bson:"payment_status" json:"payment_status"`           // unpaid | paid
	ConfirmationStatus string    `bson:"confirmation_status" json:"confirmation_status"` // pending | confirmed
	RegisteredAt       time.Time `bson:"registered_at" json:"registered_at"`
}

// Paid reports whether the registration's payment has been recorded.
func (r Registration) Paid() bool {
	return r.PaymentStatus == PaymentPaid
}
