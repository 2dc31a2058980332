package services

import (
	"strings"
	"testing"

	"github.com/civicwatch-app/backend/internal/dto"
	"github.com/civicwatch-app/backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileAbuseReport(t *testing.T) {
	db := newTestDB(t)
	svc := NewModerationService(db)
	reports := NewReportService(db, nil, 0)
	alice := createUser(t, db, "Alice", "alice@example.com", models.RoleUser)
	bob := createUser(t, db, "Bob", "bob@example.com", models.RoleUser)

	status := func(t *testing.T, id uuid.UUID) string {
		t.Helper()
		loaded, err := reports.Get(id)
		require.NoError(t, err)
		return loaded.Status
	}

	t.Run("escalates an active report to under review", func(t *testing.T) {
		report := createReport(t, db, alice.ID, "Dumped mattress in the park")

		abuse, err := svc.FileAbuseReport(bob.ID, models.TargetReport, report.ID, "spam", false)
		require.NoError(t, err)
		assert.Equal(t, bob.ID, abuse.ReporterID)
		assert.Equal(t, models.StatusUnderReview, status(t, report.ID))
	})

	t.Run("escalates an in-progress report", func(t *testing.T) {
		report := createReport(t, db, alice.ID, "Blocked bike lane")
		require.NoError(t, db.Model(report).Update("status", models.StatusInProgress).Error)

		_, err := svc.FileAbuseReport(bob.ID, models.TargetReport, report.ID, "duplicate", false)
		require.NoError(t, err)
		assert.Equal(t, models.StatusUnderReview, status(t, report.ID))
	})

	t.Run("resolved report keeps its status", func(t *testing.T) {
		report := createReport(t, db, alice.ID, "Fixed already")
		require.NoError(t, db.Model(report).Update("status", models.StatusResolved).Error)

		_, err := svc.FileAbuseReport(bob.ID, models.TargetReport, report.ID, "too late", false)
		require.NoError(t, err)
		assert.Equal(t, models.StatusResolved, status(t, report.ID))
	})

	t.Run("duplicate complaints accumulate", func(t *testing.T) {
		report := createReport(t, db, alice.ID, "Noise every night")

		for range 3 {
			_, err := svc.FileAbuseReport(bob.ID, models.TargetReport, report.ID, "harassment", true)
			require.NoError(t, err)
		}

		loaded, err := reports.Get(report.ID)
		require.NoError(t, err)
		assert.Len(t, loaded.AbuseReports, 3)
	})

	t.Run("comment target does not touch the report status", func(t *testing.T) {
		report := createReport(t, db, alice.ID, "Loose paving stones")
		comment, err := reports.AddComment(bob.ID, report.ID, "rude remark")
		require.NoError(t, err)

		_, err = svc.FileAbuseReport(alice.ID, models.TargetComment, comment.ID, "abusive language", false)
		require.NoError(t, err)
		assert.Equal(t, models.StatusActive, status(t, report.ID))

		loaded, err := reports.Get(report.ID)
		require.NoError(t, err)
		require.Len(t, loaded.Comments, 1)
		assert.Len(t, loaded.Comments[0].AbuseReports, 1)
	})

	t.Run("validation", func(t *testing.T) {
		report := createReport(t, db, alice.ID, "whatever")

		_, err := svc.FileAbuseReport(bob.ID, models.TargetReport, report.ID, "   ", false)
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = svc.FileAbuseReport(bob.ID, "user", report.ID, "bad", false)
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = svc.FileAbuseReport(bob.ID, models.TargetReport, uuid.New(), "bad", false)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestAssign(t *testing.T) {
	db := newTestDB(t)
	svc := NewModerationService(db)
	user := createUser(t, db, "User", "user@example.com", models.RoleUser)
	resolver := createUser(t, db, "Resolver", "resolver@example.com", models.RoleResolver)
	report := createReport(t, db, user.ID, "Flickering street light")

	assert.ErrorIs(t, svc.Assign(user.ID, report.ID), ErrUnauthorized)
	assert.ErrorIs(t, svc.Assign(resolver.ID, uuid.New()), ErrNotFound)

	require.NoError(t, svc.Assign(resolver.ID, report.ID))

	var loaded models.IssueReport
	require.NoError(t, db.First(&loaded, "id = ?", report.ID).Error)
	assert.Equal(t, models.StatusInProgress, loaded.Status)
	require.NotNil(t, loaded.ResolverID)
	assert.Equal(t, resolver.ID, *loaded.ResolverID)

	require.NoError(t, db.Model(&loaded).Update("status", models.StatusResolved).Error)
	assert.ErrorIs(t, svc.Assign(resolver.ID, report.ID), ErrInvalidState)
}

func TestResolve(t *testing.T) {
	db := newTestDB(t)
	svc := NewModerationService(db)
	user := createUser(t, db, "User", "user@example.com", models.RoleUser)
	resolver := createUser(t, db, "Resolver", "resolver@example.com", models.RoleResolver)
	admin := createUser(t, db, "Admin", "admin@example.com", models.RoleAdmin)

	assert.ErrorIs(t, svc.Resolve(user.ID, uuid.New(), "done"), ErrUnauthorized)
	assert.ErrorIs(t, svc.Resolve(resolver.ID, uuid.New(), ""), ErrInvalidInput)
	assert.ErrorIs(t, svc.Resolve(resolver.ID, uuid.New(), "done"), ErrNotFound)

	// Resolvable from every non-terminal state, including straight from active.
	for _, from := range []string{models.StatusActive, models.StatusInProgress, models.StatusUnderReview} {
		report := createReport(t, db, user.ID, "case "+from)
		require.NoError(t, db.Model(report).Update("status", from).Error)

		require.NoError(t, svc.Resolve(resolver.ID, report.ID, "patched by city crew"))

		var loaded models.IssueReport
		require.NoError(t, db.First(&loaded, "id = ?", report.ID).Error)
		assert.Equal(t, models.StatusResolved, loaded.Status)
		assert.Equal(t, "patched by city crew", loaded.ResolutionNote)
		require.NotNil(t, loaded.ResolverID)
		assert.Equal(t, resolver.ID, *loaded.ResolverID)
	}

	// Resolving again overwrites the note and the resolver.
	report := createReport(t, db, user.ID, "handed over")
	require.NoError(t, svc.Resolve(resolver.ID, report.ID, "first pass"))
	require.NoError(t, svc.Resolve(admin.ID, report.ID, "closed for good"))

	var loaded models.IssueReport
	require.NoError(t, db.First(&loaded, "id = ?", report.ID).Error)
	assert.Equal(t, "closed for good", loaded.ResolutionNote)
	assert.Equal(t, admin.ID, *loaded.ResolverID)
}

func TestBlockUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewModerationService(db)
	reports := NewReportService(db, nil, 0)
	auth := NewAuthService(db, testConfig())

	admin := createUser(t, db, "Admin", "admin@example.com", models.RoleAdmin)
	troll := createUser(t, db, "Troll", "troll@example.com", models.RoleUser)
	alice := createUser(t, db, "Alice", "alice@example.com", models.RoleUser)

	report := createReport(t, db, troll.ID, "offensive content")
	require.NoError(t, db.Model(report).Update("media_url", "https://example.com/x.jpg").Error)
	comment, err := reports.AddComment(troll.ID, createReport(t, db, alice.ID, "Alice's report").ID, "offensive comment")
	require.NoError(t, err)

	// The troll reacted to a report and to a comment; Alice reacted to the
	// troll's report.
	require.NoError(t, reports.ToggleReaction(troll.ID, models.TargetReport, report.ID, models.ReactionLike))
	require.NoError(t, reports.ToggleReaction(troll.ID, models.TargetComment, comment.ID, models.ReactionLaugh))
	require.NoError(t, reports.ToggleReaction(alice.ID, models.TargetReport, report.ID, models.ReactionDislike))

	_, err = svc.BlockUser(alice.ID, troll.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)

	blockID, err := svc.BlockUser(admin.ID, troll.ID)
	require.NoError(t, err)
	require.NotEmpty(t, blockID)

	t.Run("authored reports are anonymized and redacted", func(t *testing.T) {
		var loaded models.IssueReport
		require.NoError(t, db.First(&loaded, "id = ?", report.ID).Error)
		assert.Equal(t, "[Content from blocked user #"+blockID+"]", loaded.Text)
		assert.Empty(t, loaded.MediaURL)
		assert.True(t, loaded.IsAnonymous)
		assert.True(t, loaded.IsFromBlockedUser)
		assert.Equal(t, blockID, loaded.BlockID)
	})

	t.Run("authored comments are redacted", func(t *testing.T) {
		var loaded models.Comment
		require.NoError(t, db.First(&loaded, "id = ?", comment.ID).Error)
		assert.Equal(t, "[Comment from blocked user #"+blockID+"]", loaded.Text)
	})

	t.Run("report reactions removed, comment reactions kept", func(t *testing.T) {
		var remaining []models.Reaction
		require.NoError(t, db.Where("user_id = ?", troll.ID).Find(&remaining).Error)
		require.Len(t, remaining, 1)
		assert.Equal(t, models.TargetComment, remaining[0].TargetType)
	})

	t.Run("other users' reactions are untouched", func(t *testing.T) {
		var remaining []models.Reaction
		require.NoError(t, db.Where("user_id = ?", alice.ID).Find(&remaining).Error)
		assert.Len(t, remaining, 1)
	})

	t.Run("blocked user can no longer log in", func(t *testing.T) {
		_, err := auth.Login(&dto.LoginRequest{Email: "troll@example.com", Password: "password123"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("blocking twice fails", func(t *testing.T) {
		_, err := svc.BlockUser(admin.ID, troll.ID)
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("admins cannot be blocked", func(t *testing.T) {
		other := createUser(t, db, "Other Admin", "admin2@example.com", models.RoleAdmin)
		_, err := svc.BlockUser(admin.ID, other.ID)
		assert.ErrorIs(t, err, ErrInvalidState)
	})
}

func TestReportedContentListings(t *testing.T) {
	db := newTestDB(t)
	svc := NewModerationService(db)
	reports := NewReportService(db, nil, 0)
	alice := createUser(t, db, "Alice", "alice@example.com", models.RoleUser)
	bob := createUser(t, db, "Bob", "bob@example.com", models.RoleUser)

	clean := createReport(t, db, alice.ID, "clean report")
	flagged := createReport(t, db, alice.ID, "flagged report")
	comment, err := reports.AddComment(bob.ID, clean.ID, "flagged comment")
	require.NoError(t, err)

	_, err = svc.FileAbuseReport(bob.ID, models.TargetReport, flagged.ID, "spam", false)
	require.NoError(t, err)
	_, err = svc.FileAbuseReport(alice.ID, models.TargetComment, comment.ID, "rude", false)
	require.NoError(t, err)

	issues, err := svc.ReportedIssues()
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, flagged.ID, issues[0].ID)
	assert.Len(t, issues[0].AbuseReports, 1)

	comments, err := svc.ReportedComments()
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, comment.ID, comments[0].ID)
}

// Full lifecycle: submit, complaint escalates, staff resolves, a late
// complaint no longer moves the status.
func TestModerationLifecycle(t *testing.T) {
	db := newTestDB(t)
	moderation := NewModerationService(db)
	reports := NewReportService(db, nil, 0)
	alice := createUser(t, db, "Alice", "alice@example.com", models.RoleUser)
	bob := createUser(t, db, "Bob", "bob@example.com", models.RoleUser)
	resolver := createUser(t, db, "Resolver", "resolver@example.com", models.RoleResolver)

	report, err := reports.Submit(alice.ID, &dto.SubmitReportRequest{Text: "Overflowing bins behind the market"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, report.Status)

	_, err = moderation.FileAbuseReport(bob.ID, models.TargetReport, report.ID, "misleading", false)
	require.NoError(t, err)

	require.NoError(t, moderation.Resolve(resolver.ID, report.ID, "bins emptied, schedule adjusted"))

	_, err = moderation.FileAbuseReport(bob.ID, models.TargetReport, report.ID, "still misleading", false)
	require.NoError(t, err)

	loaded, err := reports.Get(report.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusResolved, loaded.Status)
	assert.Len(t, loaded.AbuseReports, 2)
	assert.True(t, strings.Contains(loaded.ResolutionNote, "bins emptied"))
}
