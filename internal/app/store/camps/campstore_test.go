package campstore_test

import (
	"errors"
	"testing"

	campstore "github.com/dalemusser/camphub/internal/app/store/camps"
	"github.com/dalemusser/camphub/internal/app/system/paging"
	"github.com/dalemusser/camphub/internal/domain/models"
	"github.com/dalemusser/camphub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_CreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := campstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Camp{
		Name:                   "Rural Eye Camp",
		Description:            "Free screening",
		Location:               "Springfield",
		DateTime:               "2026-11-05T10:00",
		Fees:                   2500,
		HealthcareProfessional: "Dr. Vision",
		ParticipantCount:       99, // must be ignored
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ParticipantCount != 0 {
		t.Errorf("participant count must start at 0, got %d", created.ParticipantCount)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "Rural Eye Camp" || got.Fees != 2500 {
		t.Errorf("unexpected camp: %+v", got)
	}
}

func TestStore_GetByID_Missing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := campstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.GetByID(ctx, primitive.NewObjectID())
	if !errors.Is(err, campstore.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestStore_Paginated(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := campstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for i := 0; i < 5; i++ {
		fx.CreateCamp(ctx, "Camp", 1000)
	}

	camps, totalPages, err := store.Paginated(ctx, paging.Page{Page: 1, Limit: 2})
	if err != nil {
		t.Fatalf("Paginated failed: %v", err)
	}
	if len(camps) != 2 {
		t.Errorf("page 1: got %d camps, want 2", len(camps))
	}
	if totalPages != 3 {
		t.Errorf("totalPages: got %d, want 3", totalPages)
	}

	camps, _, err = store.Paginated(ctx, paging.Page{Page: 3, Limit: 2})
	if err != nil {
		t.Fatalf("Paginated failed: %v", err)
	}
	if len(camps) != 1 {
		t.Errorf("page 3: got %d camps, want 1", len(camps))
	}

	camps, _, err = store.Paginated(ctx, paging.Page{Page: 9, Limit: 2})
	if err != nil {
		t.Fatalf("Paginated past the end failed: %v", err)
	}
	if len(camps) != 0 {
		t.Errorf("page past the end: got %d camps, want 0", len(camps))
	}
}

func TestStore_Popular(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := campstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for i := int64(0); i < 8; i++ {
		fx.CreateCampWithCount(ctx, "Camp", 1000, i)
	}

	camps, err := store.Popular(ctx)
	if err != nil {
		t.Fatalf("Popular failed: %v", err)
	}
	if len(camps) != campstore.PopularLimit {
		t.Fatalf("got %d camps, want %d", len(camps), campstore.PopularLimit)
	}
	for i := 1; i < len(camps); i++ {
		if camps[i].ParticipantCount > camps[i-1].ParticipantCount {
			t.Errorf("camps not sorted by participant count desc at %d", i)
		}
	}
	if camps[0].ParticipantCount != 7 {
		t.Errorf("first camp count: got %d, want 7", camps[0].ParticipantCount)
	}
}

func TestStore_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := campstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	camp := fx.CreateCamp(ctx, "Before", 1000)

	name := "After"
	fees := int64(5000)
	if err := store.Update(ctx, camp.ID, campstore.Update{Name: &name, Fees: &fees}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := store.GetByID(ctx, camp.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "After" || got.Fees != 5000 {
		t.Errorf("update not applied: %+v", got)
	}
	if got.Location != camp.Location {
		t.Errorf("untouched field changed: got %q, want %q", got.Location, camp.Location)
	}

	if err := store.Update(ctx, camp.ID, campstore.Update{}); !errors.Is(err, campstore.ErrNoFields) {
		t.Errorf("empty update: got %v, want ErrNoFields", err)
	}
	if err := store.Update(ctx, primitive.NewObjectID(), campstore.Update{Name: &name}); !errors.Is(err, campstore.ErrNotFound) {
		t.Errorf("missing camp: got %v, want ErrNotFound", err)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := campstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	camp := fx.CreateCamp(ctx, "Doomed", 1000)
	if err := store.Delete(ctx, camp.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.GetByID(ctx, camp.ID); !errors.Is(err, campstore.ErrNotFound) {
		t.Errorf("camp still present after delete: %v", err)
	}

	if err := store.Delete(ctx, camp.ID); !errors.Is(err, campstore.ErrNotFound) {
		t.Errorf("second delete: got %v, want ErrNotFound", err)
	}
}

func TestStore_Delete_BlockedByRegistrations(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := campstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	camp := fx.CreateCamp(ctx, "Busy", 1000)
	fx.CreateRegistration(ctx, camp, "someone@test.com")

	err := store.Delete(ctx, camp.ID)
	if !errors.Is(err, campstore.ErrHasRegistrations) {
		t.Fatalf("got %v, want ErrHasRegistrations", err)
	}
	if _, err := store.GetByID(ctx, camp.ID); err != nil {
		t.Errorf("camp must survive a blocked delete: %v", err)
	}
}
