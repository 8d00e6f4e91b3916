package paymentstore

import (
	"testing"
	"time"

	"github.com/dalemusser/camphub/internal/domain/models"
	"github.com/dalemusser/camphub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// When the snapshot insert fails after the status flip on the
// non-transactional path, the registration must be flipped back to
// unpaid and pending so a retry can succeed.
func TestRecordSequential_RevertsFailedInsert(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	camp := fx.CreateCamp(ctx, "Dental Camp", 4200)
	reg := fx.CreateRegistration(ctx, camp, "payer@test.com")

	p := models.Payment{
		ID:             primitive.NewObjectID(),
		RegistrationID: reg.ID,
		CampID:         camp.ID,
		CampName:       camp.Name,
		Email:          reg.Email,
		Amount:         camp.Fees,
		PaymentMethod:  "card",
		TransactionID:  "txn-fail-1",
		PaidAt:         time.Now().UTC(),
	}

	// Occupy the snapshot's id so the insert step fails.
	if _, err := db.Collection("payments").InsertOne(ctx, bson.M{"_id": p.ID}); err != nil {
		t.Fatalf("failed to seed conflicting payment: %v", err)
	}

	if _, err := store.recordSequential(ctx, p); err == nil {
		t.Fatal("recordSequential must fail when the snapshot insert fails")
	}

	var after models.Registration
	if err := db.Collection("registrations").FindOne(ctx, bson.M{"_id": reg.ID}).Decode(&after); err != nil {
		t.Fatalf("failed to load registration: %v", err)
	}
	if after.PaymentStatus != models.PaymentUnpaid || after.ConfirmationStatus != models.ConfirmationPending {
		t.Errorf("status flip not reverted: got %q/%q", after.PaymentStatus, after.ConfirmationStatus)
	}

	// A retry with a fresh snapshot goes through.
	p.ID = primitive.NewObjectID()
	p.TransactionID = "txn-retry-1"
	if _, err := store.recordSequential(ctx, p); err != nil {
		t.Fatalf("retry after revert failed: %v", err)
	}
	if err := db.Collection("registrations").FindOne(ctx, bson.M{"_id": reg.ID}).Decode(&after); err != nil {
		t.Fatalf("failed to load registration: %v", err)
	}
	if after.PaymentStatus != models.PaymentPaid || after.ConfirmationStatus != models.ConfirmationConfirmed {
		t.Errorf("retry did not mark the registration paid: got %q/%q", after.PaymentStatus, after.ConfirmationStatus)
	}
}
