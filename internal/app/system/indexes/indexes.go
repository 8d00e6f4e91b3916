package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
EnsureAll is called at startup (EnsureSchema hook). Each ensure*
function is idempotent; CreateMany on an existing identical index is a
no-op. Errors are aggregated so every problem is visible and startup
can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureCamps(ctx, db); err != nil {
		problems = append(problems, "camps: "+err.Error())
	}
	if err := ensureRegistrations(ctx, db); err != nil {
		problems = append(problems, "registrations: "+err.Error())
	}
	if err := ensurePayments(ctx, db); err != nil {
		problems = append(problems, "payments: "+err.Error())
	}
	if err := ensureFeedbacks(ctx, db); err != nil {
		problems = append(problems, "feedbacks: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// The unique email index is what makes user creation idempotent under
// concurrent duplicate calls; everything else is query support.
func ensureUsers(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		},
	})
	return err
}

func ensureCamps(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("camps").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			// paginated listing, newest first
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("created_desc"),
		},
		{
			// popular-camps listing
			Keys:    bson.D{{Key: "participant_count", Value: -1}},
			Options: options.Index().SetName("participants_desc"),
		},
	})
	return err
}

func ensureRegistrations(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("registrations").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			// live-registration checks on camp delete
			Keys:    bson.D{{Key: "camp_id", Value: 1}},
			Options: options.Index().SetName("by_camp"),
		},
		{
			// per-user listing, newest first
			Keys:    bson.D{{Key: "email", Value: 1}, {Key: "registered_at", Value: -1}},
			Options: options.Index().SetName("by_email_registered_desc"),
		},
		{
			Keys:    bson.D{{Key: "registered_at", Value: -1}},
			Options: options.Index().SetName("registered_desc"),
		},
	})
	return err
}

func ensurePayments(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("payments").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}, {Key: "paid_at", Value: -1}},
			Options: options.Index().SetName("by_email_paid_desc"),
		},
		{
			Keys:    bson.D{{Key: "paid_at", Value: -1}},
			Options: options.Index().SetName("paid_desc"),
		},
	})
	return err
}

func ensureFeedbacks(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("feedbacks").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("created_desc"),
		},
	})
	return err
}
