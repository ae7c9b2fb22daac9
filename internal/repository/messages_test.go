package repository

import (
	"context"
	"testing"

	"github.com/smsflt/sms-filter/internal/db"
	"github.com/smsflt/sms-filter/internal/model"
)

func testRepo(t *testing.T) *MessagesRepositoryImpl {
	t.Helper()
	conn, err := db.NewSQLiteConnection(":memory:", db.SQLiteOpts{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return NewMessagesRepository(conn)
}

func sample(id string) model.Message {
	return model.Message{
		ID:         id,
		Sender:     "Unknown",
		Content:    "WIN A FREE PRIZE NOW",
		Timestamp:  "2026-01-02T15:04:05Z",
		Status:     model.StatusSpam,
		IsVerified: false,
	}
}

func TestMessagesRepository_InsertAndList(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	if err := repo.Insert(ctx, sample("m1")); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := repo.Insert(ctx, sample("m2")); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	msgs, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(msgs))
	}
}

func TestMessagesRepository_ListEmpty(t *testing.T) {
	repo := testRepo(t)

	msgs, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(msgs) != 0 {
		t.Errorf("expected empty result, got %d records", len(msgs))
	}
}

func TestMessagesRepository_GetByID(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	if err := repo.Insert(ctx, sample("m1")); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, err := repo.GetByID(ctx, "m1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil {
		t.Fatal("expected record, got nil")
	}
	if got.Content != "WIN A FREE PRIZE NOW" {
		t.Errorf("content mismatch: %q", got.Content)
	}
	if got.Status != model.StatusSpam {
		t.Errorf("status mismatch: %q", got.Status)
	}
	if got.IsVerified {
		t.Error("is_verified should be false")
	}

	missing, err := repo.GetByID(ctx, "nope")
	if err != nil {
		t.Fatalf("GetByID missing: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown id, got %+v", missing)
	}
}

func TestMessagesRepository_UpdatePartial(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	if err := repo.Insert(ctx, sample("m1")); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	// Only is_verified: status must stay untouched.
	verified := true
	updated, err := repo.Update(ctx, "m1", nil, &verified)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !updated {
		t.Fatal("expected update to report a change")
	}

	got, err := repo.GetByID(ctx, "m1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.IsVerified {
		t.Error("is_verified should now be true")
	}
	if got.Status != model.StatusSpam {
		t.Errorf("status should be untouched, got %q", got.Status)
	}

	// Only status: is_verified must stay untouched.
	st := model.StatusNotSpam
	updated, err = repo.Update(ctx, "m1", &st, nil)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !updated {
		t.Fatal("expected update to report a change")
	}

	got, err = repo.GetByID(ctx, "m1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != model.StatusNotSpam {
		t.Errorf("status should be not-spam, got %q", got.Status)
	}
	if !got.IsVerified {
		t.Error("is_verified should be untouched")
	}
}

func TestMessagesRepository_UpdateSetVerifiedFalse(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	rec := sample("m1")
	rec.IsVerified = true
	if err := repo.Insert(ctx, rec); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	// Explicit false is a provided field, not an omission.
	unverified := false
	updated, err := repo.Update(ctx, "m1", nil, &unverified)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !updated {
		t.Fatal("expected update to report a change")
	}

	got, err := repo.GetByID(ctx, "m1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.IsVerified {
		t.Error("is_verified should be false")
	}
}

func TestMessagesRepository_UpdateUnknownID(t *testing.T) {
	repo := testRepo(t)

	st := model.StatusSpam
	updated, err := repo.Update(context.Background(), "ghost", &st, nil)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated {
		t.Error("updating unknown id should report no change")
	}
}

func TestMessagesRepository_Delete(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	if err := repo.Insert(ctx, sample("m1")); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	deleted, err := repo.Delete(ctx, "m1")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !deleted {
		t.Fatal("expected delete to remove the row")
	}

	// Gone for every subsequent operation.
	deleted, err = repo.Delete(ctx, "m1")
	if err != nil {
		t.Fatalf("Delete again: %v", err)
	}
	if deleted {
		t.Error("second delete should report no removal")
	}

	verified := true
	updated, err := repo.Update(ctx, "m1", nil, &verified)
	if err != nil {
		t.Fatalf("Update after delete: %v", err)
	}
	if updated {
		t.Error("update after delete should report no change")
	}
}
