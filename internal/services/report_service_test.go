package services

import (
	"context"
	"testing"
	"time"

	"github.com/civicwatch-app/backend/internal/dto"
	"github.com/civicwatch-app/backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmit(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db, nil, 0)
	alice := createUser(t, db, "Alice", "alice@example.com", models.RoleUser)

	t.Run("text only", func(t *testing.T) {
		report, err := svc.Submit(alice.ID, &dto.SubmitReportRequest{
			Text: "Pothole on Elm St",
			Tags: []string{"Pot Hole", "#safety"},
		})
		require.NoError(t, err)
		assert.Equal(t, models.StatusActive, report.Status)
		assert.Equal(t, alice.ID, report.AuthorID)

		loaded, err := svc.Get(report.ID)
		require.NoError(t, err)
		resp := dto.NewIssueReportResponse(loaded, models.RoleUser)
		assert.Equal(t, []string{"#pot-hole", "#safety"}, resp.Tags)
	})

	t.Run("media only", func(t *testing.T) {
		report, err := svc.Submit(alice.ID, &dto.SubmitReportRequest{MediaURL: "https://example.com/p.jpg"})
		require.NoError(t, err)
		assert.Equal(t, models.StatusActive, report.Status)
	})

	t.Run("both empty", func(t *testing.T) {
		_, err := svc.Submit(alice.ID, &dto.SubmitReportRequest{Text: "   "})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown author", func(t *testing.T) {
		_, err := svc.Submit(uuid.New(), &dto.SubmitReportRequest{Text: "hello"})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestAddComment(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db, nil, 0)
	alice := createUser(t, db, "Alice", "alice@example.com", models.RoleUser)
	bob := createUser(t, db, "Bob", "bob@example.com", models.RoleUser)
	report := createReport(t, db, alice.ID, "Streetlight out")

	_, err := svc.AddComment(bob.ID, report.ID, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.AddComment(bob.ID, uuid.New(), "hello")
	assert.ErrorIs(t, err, ErrNotFound)

	first, err := svc.AddComment(bob.ID, report.ID, "first")
	require.NoError(t, err)
	second, err := svc.AddComment(alice.ID, report.ID, "second")
	require.NoError(t, err)

	// Presentation order is authorship order.
	loaded, err := svc.Get(report.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Comments, 2)
	assert.Equal(t, first.ID, loaded.Comments[0].ID)
	assert.Equal(t, second.ID, loaded.Comments[1].ID)
}

func TestToggleReaction(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db, nil, 0)
	alice := createUser(t, db, "Alice", "alice@example.com", models.RoleUser)
	bob := createUser(t, db, "Bob", "bob@example.com", models.RoleUser)
	report := createReport(t, db, bob.ID, "Graffiti on the underpass")

	reactions := func(t *testing.T) []models.Reaction {
		t.Helper()
		loaded, err := svc.Get(report.ID)
		require.NoError(t, err)
		return loaded.Reactions
	}

	// Like, like again: back to nothing.
	require.NoError(t, svc.ToggleReaction(alice.ID, models.TargetReport, report.ID, models.ReactionLike))
	require.Len(t, reactions(t), 1)
	require.NoError(t, svc.ToggleReaction(alice.ID, models.TargetReport, report.ID, models.ReactionLike))
	require.Len(t, reactions(t), 0)

	// Like then love: one reaction, type love.
	require.NoError(t, svc.ToggleReaction(alice.ID, models.TargetReport, report.ID, models.ReactionLike))
	require.NoError(t, svc.ToggleReaction(alice.ID, models.TargetReport, report.ID, models.ReactionLove))
	got := reactions(t)
	require.Len(t, got, 1)
	assert.Equal(t, models.ReactionLove, got[0].Type)
	assert.Equal(t, alice.ID, got[0].UserID)

	// A second user holds an independent reaction.
	require.NoError(t, svc.ToggleReaction(bob.ID, models.TargetReport, report.ID, models.ReactionSad))
	require.Len(t, reactions(t), 2)

	assert.ErrorIs(t, svc.ToggleReaction(alice.ID, models.TargetReport, report.ID, "meh"), ErrInvalidInput)
	assert.ErrorIs(t, svc.ToggleReaction(alice.ID, "post", report.ID, models.ReactionLike), ErrInvalidInput)
	assert.ErrorIs(t, svc.ToggleReaction(alice.ID, models.TargetReport, uuid.New(), models.ReactionLike), ErrNotFound)
}

func TestToggleReactionOnComment(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db, nil, 0)
	alice := createUser(t, db, "Alice", "alice@example.com", models.RoleUser)
	report := createReport(t, db, alice.ID, "Broken bench")
	comment, err := svc.AddComment(alice.ID, report.ID, "still broken")
	require.NoError(t, err)

	require.NoError(t, svc.ToggleReaction(alice.ID, models.TargetComment, comment.ID, models.ReactionLaugh))

	loaded, err := svc.Get(report.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Comments, 1)
	require.Len(t, loaded.Comments[0].Reactions, 1)
	assert.Equal(t, models.ReactionLaugh, loaded.Comments[0].Reactions[0].Type)
}

func TestListNewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db, nil, 0)
	alice := createUser(t, db, "Alice", "alice@example.com", models.RoleUser)

	older := createReport(t, db, alice.ID, "older")
	require.NoError(t, db.Model(older).Update("created_at", older.CreatedAt.Add(-time.Hour)).Error)
	newer := createReport(t, db, alice.ID, "newer")

	reports, err := svc.List()
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, newer.ID, reports[0].ID)
	assert.Equal(t, older.ID, reports[1].ID)
}

func TestSuggestTagsWithoutGateway(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db, nil, 0)

	assert.Empty(t, svc.SuggestTags(context.Background(), "anything at all"))
}
