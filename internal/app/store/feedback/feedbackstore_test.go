package feedbackstore_test

import (
	"testing"

	feedbackstore "github.com/dalemusser/camphub/internal/app/store/feedback"
	"github.com/dalemusser/camphub/internal/domain/models"
	"github.com/dalemusser/camphub/internal/testutil"
)

func TestStore_CreateAndAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := feedbackstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Feedback{
		Email:   "Voice@Test.com",
		Name:    "Voice",
		Rating:  5,
		Content: "Great camp",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Email != "voice@test.com" {
		t.Errorf("email not normalized: %q", created.Email)
	}
	if created.CreatedAt.IsZero() {
		t.Error("created_at not stamped")
	}

	if _, err := store.Create(ctx, models.Feedback{Email: "b@test.com", Rating: 3, Content: "Okay"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	all, err := store.All(ctx)
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d entries, want 2", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].CreatedAt.After(all[i-1].CreatedAt) {
			t.Errorf("entries not sorted newest first at %d", i)
		}
	}
}
