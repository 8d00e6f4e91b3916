package campstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/camphub/internal/app/system/paging"
	"github.com/dalemusser/camphub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PopularLimit is how many camps the popularity listing returns.
const PopularLimit = 6

var (
	// ErrNotFound is returned when no camp exists for the given id.
	ErrNotFound = errors.New("camp not found")
	// ErrNoFields is returned by Update when nothing was supplied to update.
	ErrNoFields = errors.New("no fields to update")
	// ErrHasRegistrations is returned by Delete while registrations for
	// the camp still exist.
	ErrHasRegistrations = errors.New("camp has registrations")
)

type Store struct {
	c             *mongo.Collection
	registrations *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:             db.Collection("camps"),
		registrations: db.Collection("registrations"),
	}
}

// Create inserts a new camp with a zero participant count.
func (s *Store) Create(ctx context.Context, camp models.Camp) (models.Camp, error) {
	camp.ID = primitive.NewObjectID()
	camp.ParticipantCount = 0

	now := time.Now().UTC()
	camp.CreatedAt = now
	camp.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, camp); err != nil {
		return models.Camp{}, err
	}
	return camp, nil
}

// All returns every camp, newest first.
func (s *Store) All(ctx context.Context) ([]models.Camp, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	camps := []models.Camp{}
	if err := cur.All(ctx, &camps); err != nil {
		return nil, err
	}
	return camps, nil
}

// Paginated returns one page of camps, newest first, along with the
// total page count for the page size used.
func (s *Store) Paginated(ctx context.Context, page paging.Page) ([]models.Camp, int, error) {
	total, err := s.c.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(page.Skip()).
		SetLimit(int64(page.Limit))
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	camps := []models.Camp{}
	if err := cur.All(ctx, &camps); err != nil {
		return nil, 0, err
	}
	return camps, paging.TotalPages(total, page.Limit), nil
}

// Popular returns the camps with the highest participant counts.
func (s *Store) Popular(ctx context.Context) ([]models.Camp, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "participant_count", Value: -1}}).
		SetLimit(PopularLimit)
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	camps := []models.Camp{}
	if err := cur.All(ctx, &camps); err != nil {
		return nil, err
	}
	return camps, nil
}

// GetByID looks up a single camp. Returns ErrNotFound if absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Camp, error) {
	var camp models.Camp
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&camp)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &camp, nil
}

// Update describes the camp fields an organizer may change. Nil fields
// are left untouched; the participant count is never writable here.
type Update struct {
	Name                   *string
	Description            *string
	Location               *string
	DateTime               *string
	Fees                   *int64
	HealthcareProfessional *string
	ImageURL               *string
}

// Update applies the non-nil fields to the camp and stamps updated_at.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) error {
	set := bson.M{}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Location != nil {
		set["location"] = *upd.Location
	}
	if upd.DateTime != nil {
		set["date_time"] = *upd.DateTime
	}
	if upd.Fees != nil {
		set["fees"] = *upd.Fees
	}
	if upd.HealthcareProfessional != nil {
		set["healthcare_professional"] = *upd.HealthcareProfessional
	}
	if upd.ImageURL != nil {
		set["image_url"] = *upd.ImageURL
	}
	if len(set) == 0 {
		return ErrNoFields
	}
	set["updated_at"] = time.Now().UTC()

	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the camp. Deletion is refused while any registration
// still references the camp, so history behind paid or pending
// registrations never dangles.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	n, err := s.registrations.CountDocuments(ctx, bson.M{"camp_id": id})
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrHasRegistrations
	}

	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
