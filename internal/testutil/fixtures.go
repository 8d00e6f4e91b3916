package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/camphub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with the given email, name and role.
func (f *Fixtures) CreateUser(ctx context.Context, email, name, role string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:        primitive.NewObjectID(),
		Email:     email,
		Name:      name,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := f.db.Collection("users").InsertOne(ctx, user)
	if err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// CreateParticipant creates a test user with the participant role.
func (f *Fixtures) CreateParticipant(ctx context.Context, email, name string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, email, name, models.RoleParticipant)
}

// CreateOrganizer creates a test user with the organizer role.
func (f *Fixtures) CreateOrganizer(ctx context.Context, email, name string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, email, name, models.RoleOrganizer)
}

// CreateCamp creates a test camp with the given name and fee, and an
// initial participant count of zero.
func (f *Fixtures) CreateCamp(ctx context.Context, name string, fees int64) models.Camp {
	f.t.Helper()
	return f.CreateCampWithCount(ctx, name, fees, 0)
}

// CreateCampWithCount creates a test camp with a preset participant count.
func (f *Fixtures) CreateCampWithCount(ctx context.Context, name string, fees, participants int64) models.Camp {
	f.t.Helper()

	now := time.Now().UTC()
	camp := models.Camp{
		ID:                     primitive.NewObjectID(),
		Name:                   name,
		Description:            "Test camp description",
		Location:               "Test City",
		DateTime:               "2026-10-01T09:00",
		Fees:                   fees,
		HealthcareProfessional: "Dr. Test",
		ParticipantCount:       participants,
		CreatedAt:              now,
		UpdatedAt:              now,
	}

	_, err := f.db.Collection("camps").InsertOne(ctx, camp)
	if err != nil {
		f.t.Fatalf("failed to create test camp: %v", err)
	}

	return camp
}

// CreateRegistration creates a test registration for the given camp and
// participant email, with unpaid and pending statuses.
func (f *Fixtures) CreateRegistration(ctx context.Context, camp models.Camp, email string) models.Registration {
	f.t.Helper()

	reg := models.Registration{
		ID:                 primitive.NewObjectID(),
		CampID:             camp.ID,
		CampName:           camp.Name,
		Email:              email,
		ParticipantName:    "Test Participant",
		Age:                30,
		Phone:              "555-0100",
		Gender:             "other",
		EmergencyContact:   "555-0199",
		PaymentStatus:      models.PaymentUnpaid,
		ConfirmationStatus: models.ConfirmationPending,
		RegisteredAt:       time.Now().UTC(),
	}

	_, err := f.db.Collection("registrations").InsertOne(ctx, reg)
	if err != nil {
		f.t.Fatalf("failed to create test registration: %v", err)
	}

	return reg
}

// CreatePaidRegistration creates a test registration already marked paid
// and confirmed.
func (f *Fixtures) CreatePaidRegistration(ctx context.Context, camp models.Camp, email string) models.Registration {
	f.t.Helper()

	reg := f.CreateRegistration(ctx, camp, email)
	_, err := f.db.Collection("registrations").UpdateByID(ctx, reg.ID, map[string]any{
		"$set": map[string]any{
			"payment_status":      models.PaymentPaid,
			"confirmation_status": models.ConfirmationConfirmed,
		},
	})
	if err != nil {
		f.t.Fatalf("failed to mark test registration paid: %v", err)
	}
	reg.PaymentStatus = models.PaymentPaid
	reg.ConfirmationStatus = models.ConfirmationConfirmed
	return reg
}

// CreatePayment creates a test payment record for the given registration.
func (f *Fixtures) CreatePayment(ctx context.Context, reg models.Registration, amount int64) models.Payment {
	f.t.Helper()

	p := models.Payment{
		ID:             primitive.NewObjectID(),
		RegistrationID: reg.ID,
		CampID:         reg.CampID,
		CampName:       reg.CampName,
		Email:          reg.Email,
		Amount:         amount,
		PaymentMethod:  "card",
		TransactionID:  primitive.NewObjectID().Hex(),
		PaidAt:         time.Now().UTC(),
	}

	_, err := f.db.Collection("payments").InsertOne(ctx, p)
	if err != nil {
		f.t.Fatalf("failed to create test payment: %v", err)
	}

	return p
}

// CreateFeedback creates a test feedback entry.
func (f *Fixtures) CreateFeedback(ctx context.Context, email, name string, rating int, content string) models.Feedback {
	f.t.Helper()

	fb := models.Feedback{
		ID:        primitive.NewObjectID(),
		Email:     email,
		Name:      name,
		Rating:    rating,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	_, err := f.db.Collection("feedbacks").InsertOne(ctx, fb)
	if err != nil {
		f.t.Fatalf("failed to create test feedback: %v", err)
	}

	return fb
}
