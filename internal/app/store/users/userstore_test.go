package userstore_test

import (
	"errors"
	"testing"
	"time"

	userstore "github.com/dalemusser/camphub/internal/app/store/users"
	"github.com/dalemusser/camphub/internal/app/system/indexes"
	"github.com/dalemusser/camphub/internal/domain/models"
	"github.com/dalemusser/camphub/internal/testutil"
)

func TestStore_Upsert_CreatesOnce(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	u := models.User{Email: "Rina@Example.com", Name: "Rina Akter"}

	first, created, err := store.Upsert(ctx, u)
	if err != nil {
		t.Fatalf("first Upsert failed: %v", err)
	}
	if !created {
		t.Error("first Upsert: expected created=true")
	}
	if first.Email != "rina@example.com" {
		t.Errorf("email not normalized: got %q", first.Email)
	}

	second, created, err := store.Upsert(ctx, u)
	if err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}
	if created {
		t.Error("second Upsert: expected created=false")
	}
	if second.ID != first.ID {
		t.Error("second Upsert returned a different user")
	}

	count, err := db.Collection("users").CountDocuments(ctx, map[string]any{"email": "rina@example.com"})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected exactly 1 stored user, got %d", count)
	}
}

func TestStore_Upsert_RefusesSelfAssertedOrganizer(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u, created, err := store.Upsert(ctx, models.User{Email: "sneaky@example.com", Role: "organizer"})
	if err != nil || !created {
		t.Fatalf("Upsert failed: created=%v err=%v", created, err)
	}
	if u.Role == models.RoleOrganizer {
		t.Error("self-asserted organizer role must not be stored")
	}
}

func TestStore_TouchSignIn_MissingUserIsNotAnError(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.TouchSignIn(ctx, "ghost@example.com", time.Now()); err != nil {
		t.Fatalf("TouchSignIn on missing user: %v", err)
	}
}

func TestStore_TouchSignIn_SetsTimestamp(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, _, err := store.Upsert(ctx, models.User{Email: "a@example.com", Name: "A"}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	if err := store.TouchSignIn(ctx, "a@example.com", at); err != nil {
		t.Fatalf("TouchSignIn failed: %v", err)
	}

	u, err := store.GetByEmail(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if u.LastSignInAt == nil || !u.LastSignInAt.Equal(at) {
		t.Errorf("LastSignInAt: got %v, want %v", u.LastSignInAt, at)
	}
}

func TestStore_UpdateProfile(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, _, err := store.Upsert(ctx, models.User{Email: "b@example.com", Name: "Before"}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	name := "After"
	if err := store.UpdateProfile(ctx, "b@example.com", userstore.ProfileUpdate{Name: &name}); err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}

	u, err := store.GetByEmail(ctx, "b@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if u.Name != "After" {
		t.Errorf("Name: got %q, want %q", u.Name, "After")
	}
	if u.PhotoURL != "" {
		t.Errorf("PhotoURL must be untouched, got %q", u.PhotoURL)
	}
}

func TestStore_UpdateProfile_NoFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := store.UpdateProfile(ctx, "b@example.com", userstore.ProfileUpdate{})
	if !errors.Is(err, userstore.ErrNoFields) {
		t.Errorf("got %v, want ErrNoFields", err)
	}
}

func TestStore_UpdateProfile_MissingUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	name := "Anyone"
	err := store.UpdateProfile(ctx, "ghost@example.com", userstore.ProfileUpdate{Name: &name})
	if !errors.Is(err, userstore.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestStore_Role_DefaultsToParticipant(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// A user document with no role field at all.
	if _, _, err := store.Upsert(ctx, models.User{Email: "norole@example.com", Name: "No Role"}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	role, err := store.Role(ctx, "norole@example.com")
	if err != nil {
		t.Fatalf("Role failed: %v", err)
	}
	if role != models.RoleParticipant {
		t.Errorf("role: got %q, want participant", role)
	}
}

func TestStore_Role_MissingUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Role(ctx, "ghost@example.com")
	if !errors.Is(err, userstore.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestStore_PromoteOrganizer(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, _, err := store.Upsert(ctx, models.User{Email: "lead@example.com", Name: "Lead"}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if err := store.PromoteOrganizer(ctx, "lead@example.com"); err != nil {
		t.Fatalf("PromoteOrganizer failed: %v", err)
	}

	role, err := store.Role(ctx, "lead@example.com")
	if err != nil {
		t.Fatalf("Role failed: %v", err)
	}
	if role != models.RoleOrganizer {
		t.Errorf("role: got %q, want organizer", role)
	}

	if err := store.PromoteOrganizer(ctx, "ghost@example.com"); !errors.Is(err, userstore.ErrNotFound) {
		t.Errorf("promote missing user: got %v, want ErrNotFound", err)
	}
}
