package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/camphub/internal/app/system/normalize"
	"github.com/dalemusser/camphub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotFound is returned when no user exists for the given email.
	ErrNotFound = errors.New("user not found")
	// ErrNoFields is returned by UpdateProfile when nothing was supplied
	// to update.
	ErrNoFields = errors.New("no fields to update")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// GetByEmail looks up a user by normalized email. Returns ErrNotFound
// if absent.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Upsert inserts the user if the email is new and reports whether a
// document was created. An existing email is not an error: first
// sign-in creates the account, every later sign-in finds it. The unique
// email index makes this safe under concurrent duplicate calls; a
// duplicate-key race collapses to created=false.
func (s *Store) Upsert(ctx context.Context, u models.User) (models.User, bool, error) {
	u.Email = normalize.Email(u.Email)
	u.Name = normalize.Name(u.Name)

	existing, err := s.GetByEmail(ctx, u.Email)
	if err == nil {
		return *existing, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return models.User{}, false, err
	}

	u.ID = primitive.NewObjectID()
	// Organizer is granted by promotion, never self-asserted at creation.
	if normalize.Role(u.Role) == models.RoleOrganizer {
		u.Role = models.RoleParticipant
	} else if u.Role != "" {
		u.Role = normalize.Role(u.Role)
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			// Lost the race to a concurrent first sign-in.
			winner, findErr := s.GetByEmail(ctx, u.Email)
			if findErr != nil {
				return models.User{}, false, findErr
			}
			return *winner, false, nil
		}
		return models.User{}, false, err
	}
	return u, true, nil
}

// TouchSignIn records the last sign-in time. Zero matched documents is
// not an error; the caller may race user creation and the next sign-in
// will land.
func (s *Store) TouchSignIn(ctx context.Context, email string, at time.Time) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"email": normalize.Email(email)},
		bson.M{"$set": bson.M{"last_sign_in_at": at.UTC(), "updated_at": time.Now().UTC()}},
	)
	return err
}

// ProfileUpdate holds the optional profile fields. Nil means "leave
// unchanged".
type ProfileUpdate struct {
	Name     *string
	PhotoURL *string
}

// UpdateProfile updates only the supplied fields. Returns ErrNoFields
// when both are nil and ErrNotFound when the email has no account.
func (s *Store) UpdateProfile(ctx context.Context, email string, upd ProfileUpdate) error {
	set := bson.M{}
	if upd.Name != nil {
		set["name"] = normalize.Name(*upd.Name)
	}
	if upd.PhotoURL != nil {
		set["photo_url"] = *upd.PhotoURL
	}
	if len(set) == 0 {
		return ErrNoFields
	}
	set["updated_at"] = time.Now().UTC()

	res, err := s.c.UpdateOne(ctx,
		bson.M{"email": normalize.Email(email)},
		bson.M{"$set": set},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Role returns the user's role, defaulting to participant when the
// field is unset. A missing user is ErrNotFound; the access guard
// treats that as forbidden rather than minting an implicit role.
func (s *Store) Role(ctx context.Context, email string) (string, error) {
	var doc struct {
		Role string `bson:"role"`
	}
	err := s.c.FindOne(ctx,
		bson.M{"email": normalize.Email(email)},
		options.FindOne().SetProjection(bson.M{"role": 1}),
	).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	if doc.Role == "" {
		return models.RoleParticipant, nil
	}
	return doc.Role, nil
}

// PromoteOrganizer grants the organizer role to an existing user. Used
// by the startup bootstrap; returns ErrNotFound if the user has not
// signed in yet.
func (s *Store) PromoteOrganizer(ctx context.Context, email string) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"email": normalize.Email(email)},
		bson.M{"$set": bson.M{"role": models.RoleOrganizer, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
