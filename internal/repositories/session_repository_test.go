package repositories

import (
	"context"
	"testing"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"intervue/internal/models"
	"intervue/internal/testhelpers"
)

func seedSession(t *testing.T, db *gorm.DB, status string, startedAt time.Time) *models.InterviewSession {
	t.Helper()
	session := &models.InterviewSession{
		UserID:      "user-1",
		Status:      status,
		QuestionIDs: datatypes.NewJSONSlice([]string{"q1", "q2"}),
		StartedAt:   startedAt,
	}
	if err := db.Create(session).Error; err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}
	return session
}

func TestSessionRepository_GetByID(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	repo := NewSessionRepository(db)
	ctx := context.Background()

	session := seedSession(t, db, models.SessionInProgress, time.Now())

	t.Run("success", func(t *testing.T) {
		got, err := repo.GetByID(ctx, session.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.UserID != "user-1" || len(got.QuestionIDs) != 2 {
			t.Fatalf("unexpected session: %+v", got)
		}
	})

	t.Run("not found", func(t *testing.T) {
		if _, err := repo.GetByID(ctx, "missing"); err != ErrSessionNotFound {
			t.Fatalf("expected ErrSessionNotFound, got %v", err)
		}
	})
}

func TestSessionRepository_AdvanceIndex(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	repo := NewSessionRepository(db)
	ctx := context.Background()

	session := seedSession(t, db, models.SessionInProgress, time.Now())

	if err := repo.AdvanceIndex(ctx, session.ID, 0); err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	got, err := repo.GetByID(ctx, session.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.CurrentQuestionIndex != 1 {
		t.Fatalf("expected index 1, got %d", got.CurrentQuestionIndex)
	}

	// a second advance from the stale index must fail
	if err := repo.AdvanceIndex(ctx, session.ID, 0); err != ErrStaleIndex {
		t.Fatalf("expected ErrStaleIndex, got %v", err)
	}
}

func TestSessionRepository_Complete(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	repo := NewSessionRepository(db)
	ctx := context.Background()

	session := seedSession(t, db, models.SessionInProgress, time.Now())
	if err := repo.AdvanceIndex(ctx, session.ID, 0); err != nil {
		t.Fatalf("advance failed: %v", err)
	}

	if err := repo.Complete(ctx, session.ID, 1, time.Now()); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	got, err := repo.GetByID(ctx, session.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != models.SessionCompleted {
		t.Fatalf("expected completed, got %s", got.Status)
	}
	if got.CurrentQuestionIndex != 2 {
		t.Fatalf("expected index past last question, got %d", got.CurrentQuestionIndex)
	}
	if got.CompletedAt == nil {
		t.Fatalf("expected completed_at to be set")
	}

	// completed sessions match no further guarded updates
	if err := repo.AdvanceIndex(ctx, session.ID, 2); err != ErrStaleIndex {
		t.Fatalf("expected ErrStaleIndex on completed session, got %v", err)
	}
}

func TestSessionRepository_Abandon(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	repo := NewSessionRepository(db)
	ctx := context.Background()

	session := seedSession(t, db, models.SessionInProgress, time.Now())
	if err := repo.Abandon(ctx, session.ID); err != nil {
		t.Fatalf("abandon failed: %v", err)
	}

	got, err := repo.GetByID(ctx, session.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != models.SessionAbandoned {
		t.Fatalf("expected abandoned, got %s", got.Status)
	}

	// abandoning a terminal session is a no-op
	completed := seedSession(t, db, models.SessionCompleted, time.Now())
	if err := repo.Abandon(ctx, completed.ID); err != nil {
		t.Fatalf("abandon on completed returned error: %v", err)
	}
	got, err = repo.GetByID(ctx, completed.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != models.SessionCompleted {
		t.Fatalf("expected completed to stay completed, got %s", got.Status)
	}
}

func TestSessionRepository_AbandonStale(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	repo := NewSessionRepository(db)
	ctx := context.Background()

	stale := seedSession(t, db, models.SessionInProgress, time.Now().Add(-48*time.Hour))
	fresh := seedSession(t, db, models.SessionInProgress, time.Now())
	completed := seedSession(t, db, models.SessionCompleted, time.Now().Add(-48*time.Hour))

	count, err := repo.AbandonStale(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("abandon stale failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 reaped session, got %d", count)
	}

	for _, tc := range []struct {
		id   string
		want string
	}{
		{stale.ID, models.SessionAbandoned},
		{fresh.ID, models.SessionInProgress},
		{completed.ID, models.SessionCompleted},
	} {
		got, err := repo.GetByID(ctx, tc.id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Status != tc.want {
			t.Fatalf("session %s: expected %s, got %s", tc.id, tc.want, got.Status)
		}
	}
}
