package paymentstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/camphub/internal/app/system/normalize"
	"github.com/dalemusser/camphub/internal/app/system/txn"
	"github.com/dalemusser/camphub/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrRegistrationNotFound is returned by Record when the referenced
	// registration does not exist.
	ErrRegistrationNotFound = errors.New("registration not found")
	// ErrAlreadyPaid is returned by Record when the registration has
	// already been paid for.
	ErrAlreadyPaid = errors.New("registration already paid")
)

type Store struct {
	payments *mongo.Collection
	regs     *mongo.Collection
	camps    *mongo.Collection
	client   *mongo.Client
}

func New(db *mongo.Database) *Store {
	return &Store{
		payments: db.Collection("payments"),
		regs:     db.Collection("registrations"),
		camps:    db.Collection("camps"),
		client:   db.Client(),
	}
}

// Record marks the registration paid and confirmed and stores a payment
// snapshot, as one unit. The status flip is conditional on the
// registration still being unpaid, so a registration can be paid for at
// most once; a concurrent duplicate collapses to ErrAlreadyPaid. The
// amount is taken from the camp's current fee. An empty transactionID is
// replaced with a generated one, which covers free camps that never
// touch the card processor.
func (s *Store) Record(ctx context.Context, registrationID primitive.ObjectID, method, transactionID string) (models.Payment, error) {
	var reg models.Registration
	err := s.regs.FindOne(ctx, bson.M{"_id": registrationID}).Decode(&reg)
	if err == mongo.ErrNoDocuments {
		return models.Payment{}, ErrRegistrationNotFound
	}
	if err != nil {
		return models.Payment{}, err
	}
	if reg.Paid() {
		return models.Payment{}, ErrAlreadyPaid
	}

	var amount int64
	var camp models.Camp
	if err := s.camps.FindOne(ctx, bson.M{"_id": reg.CampID}).Decode(&camp); err == nil {
		amount = camp.Fees
	} else if err != mongo.ErrNoDocuments {
		return models.Payment{}, err
	}

	if transactionID == "" {
		transactionID = uuid.NewString()
	}
	p := models.Payment{
		ID:             primitive.NewObjectID(),
		RegistrationID: reg.ID,
		CampID:         reg.CampID,
		CampName:       reg.CampName,
		Email:          reg.Email,
		Amount:         amount,
		PaymentMethod:  method,
		TransactionID:  transactionID,
		PaidAt:         time.Now().UTC(),
	}

	err = txn.WithTransaction(ctx, s.client, func(sc mongo.SessionContext) error {
		if err := s.flipToPaid(sc, reg.ID); err != nil {
			return err
		}
		_, err := s.payments.InsertOne(sc, p)
		return err
	})
	if err == nil {
		return p, nil
	}
	if !txn.IsNotSupported(err) {
		return models.Payment{}, err
	}
	return s.recordSequential(ctx, p)
}

// recordSequential is the fallback for deployments without transaction
// support. Flip the status first, then insert the snapshot; revert the
// flip if the insert fails.
func (s *Store) recordSequential(ctx context.Context, p models.Payment) (models.Payment, error) {
	if err := s.flipToPaid(ctx, p.RegistrationID); err != nil {
		return models.Payment{}, err
	}
	if _, err := s.payments.InsertOne(ctx, p); err != nil {
		_, _ = s.regs.UpdateOne(ctx,
			bson.M{"_id": p.RegistrationID, "payment_status": models.PaymentPaid},
			bson.M{"$set": bson.M{
				"payment_status":      models.PaymentUnpaid,
				"confirmation_status": models.ConfirmationPending,
			}},
		)
		return models.Payment{}, err
	}
	return p, nil
}

func (s *Store) flipToPaid(ctx context.Context, regID primitive.ObjectID) error {
	res, err := s.regs.UpdateOne(ctx,
		bson.M{"_id": regID, "payment_status": models.PaymentUnpaid},
		bson.M{"$set": bson.M{
			"payment_status":      models.PaymentPaid,
			"confirmation_status": models.ConfirmationConfirmed,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrAlreadyPaid
	}
	return nil
}

// ByEmail returns a participant's payment history, newest first.
func (s *Store) ByEmail(ctx context.Context, email string) ([]models.Payment, error) {
	return s.find(ctx, bson.M{"email": normalize.Email(email)})
}

// All returns every payment, newest first.
func (s *Store) All(ctx context.Context) ([]models.Payment, error) {
	return s.find(ctx, bson.M{})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Payment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "paid_at", Value: -1}})
	cur, err := s.payments.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Payment{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
