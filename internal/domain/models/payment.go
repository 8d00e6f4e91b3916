// internal/domain/models/payment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment is an append-only record of one completed payment. It holds a
// snapshot of the amount and identifiers at the time of payment; nothing
// on it is ever mutated. A payment document exists iff its registration
// is {paid, confirmed}.
type Payment struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RegistrationID primitive.ObjectID `bson:"registration_id" json:"registration_id"`
	CampID         primitive.ObjectID `bson:"camp_id" json:"camp_id"`
	CampName       string             `bson:"camp_name,omitempty" json:"camp_name,omitempty"`
	Email          string             `bson:"email" json:"email"`

	Amount        int64     `bson:"amount" json:"amount"` // cents
	PaymentMethod string    `bson:"payment_method,omitempty" json:"payment_method,omitempty"`
	TransactionID string    `bson:"transaction_id" json:"transaction_id"`
	PaidAt        time.Time `bson:"paid_at" json:"paid_at"`
}
