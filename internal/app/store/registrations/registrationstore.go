package registrationstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/camphub/internal/app/system/normalize"
	"github.com/dalemusser/camphub/internal/app/system/txn"
	"github.com/dalemusser/camphub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotFound is returned when no registration exists for the given id.
	ErrNotFound = errors.New("registration not found")
	// ErrCampNotFound is returned by Register when the target camp does
	// not exist.
	ErrCampNotFound = errors.New("camp not found")
)

type Store struct {
	regs   *mongo.Collection
	camps  *mongo.Collection
	client *mongo.Client
}

func New(db *mongo.Database) *Store {
	return &Store{
		regs:   db.Collection("registrations"),
		camps:  db.Collection("camps"),
		client: db.Client(),
	}
}

// Register inserts a registration and increments the camp's participant
// count as one unit. New registrations always start unpaid and pending.
// Runs in a transaction where the deployment supports one; otherwise the
// insert and the counter bump run sequentially with a compensating
// delete if the bump fails.
func (s *Store) Register(ctx context.Context, reg models.Registration) (models.Registration, error) {
	camp, err := s.campByID(ctx, reg.CampID)
	if err != nil {
		return models.Registration{}, err
	}

	reg.ID = primitive.NewObjectID()
	reg.CampName = camp.Name
	reg.Email = normalize.Email(reg.Email)
	reg.PaymentStatus = models.PaymentUnpaid
	reg.ConfirmationStatus = models.ConfirmationPending
	reg.RegisteredAt = time.Now().UTC()

	err = txn.WithTransaction(ctx, s.client, func(sc mongo.SessionContext) error {
		if _, err := s.regs.InsertOne(sc, reg); err != nil {
			return err
		}
		return s.bumpParticipants(sc, reg.CampID, 1)
	})
	if err == nil {
		return reg, nil
	}
	if !txn.IsNotSupported(err) {
		return models.Registration{}, err
	}
	return s.registerSequential(ctx, reg)
}

// registerSequential is the fallback for deployments without
// transaction support. Insert first, then bump; if the camp
// disappeared in between, remove the orphaned registration.
func (s *Store) registerSequential(ctx context.Context, reg models.Registration) (models.Registration, error) {
	if _, err := s.regs.InsertOne(ctx, reg); err != nil {
		return models.Registration{}, err
	}
	if err := s.bumpParticipants(ctx, reg.CampID, 1); err != nil {
		_, _ = s.regs.DeleteOne(ctx, bson.M{"_id": reg.ID})
		return models.Registration{}, err
	}
	return reg, nil
}

// Cancel removes a registration and decrements the camp's participant
// count. A missing registration returns ErrNotFound and leaves the
// counter untouched.
func (s *Store) Cancel(ctx context.Context, id primitive.ObjectID) error {
	reg, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = txn.WithTransaction(ctx, s.client, func(sc mongo.SessionContext) error {
		res, err := s.regs.DeleteOne(sc, bson.M{"_id": id})
		if err != nil {
			return err
		}
		if res.DeletedCount == 0 {
			return ErrNotFound
		}
		return s.dropParticipant(sc, reg.CampID)
	})
	if err == nil || !txn.IsNotSupported(err) {
		return err
	}

	res, err := s.regs.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		// Lost a race with another cancel; nothing to compensate.
		return ErrNotFound
	}
	return s.dropParticipant(ctx, reg.CampID)
}

// GetByID looks up a single registration. Returns ErrNotFound if absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Registration, error) {
	var reg models.Registration
	err := s.regs.FindOne(ctx, bson.M{"_id": id}).Decode(&reg)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// All returns every registration, newest first.
func (s *Store) All(ctx context.Context) ([]models.Registration, error) {
	return s.find(ctx, bson.M{})
}

// ByEmail returns a participant's registrations, newest first.
func (s *Store) ByEmail(ctx context.Context, email string) ([]models.Registration, error) {
	return s.find(ctx, bson.M{"email": normalize.Email(email)})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Registration, error) {
	opts := options.Find().SetSort(bson.D{{Key: "registered_at", Value: -1}})
	cur, err := s.regs.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	regs := []models.Registration{}
	if err := cur.All(ctx, &regs); err != nil {
		return nil, err
	}
	return regs, nil
}

func (s *Store) campByID(ctx context.Context, id primitive.ObjectID) (*models.Camp, error) {
	var camp models.Camp
	err := s.camps.FindOne(ctx, bson.M{"_id": id}).Decode(&camp)
	if err == mongo.ErrNoDocuments {
		return nil, ErrCampNotFound
	}
	if err != nil {
		return nil, err
	}
	return &camp, nil
}

func (s *Store) bumpParticipants(ctx context.Context, campID primitive.ObjectID, delta int64) error {
	res, err := s.camps.UpdateByID(ctx, campID, bson.M{"$inc": bson.M{"participant_count": delta}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrCampNotFound
	}
	return nil
}

// dropParticipant decrements the counter but never below zero. A camp
// already at zero, or deleted, is left alone.
func (s *Store) dropParticipant(ctx context.Context, campID primitive.ObjectID) error {
	_, err := s.camps.UpdateOne(ctx,
		bson.M{"_id": campID, "participant_count": bson.M{"$gt": 0}},
		bson.M{"$inc": bson.M{"participant_count": -1}},
	)
	return err
}
