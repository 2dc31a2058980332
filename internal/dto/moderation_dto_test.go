package dto

import (
	"testing"

	"github.com/civicwatch-app/backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestAbuseReportViewReporterVisibility(t *testing.T) {
	reporter := uuid.New()

	anonymous := models.AbuseReport{ID: uuid.New(), ReporterID: reporter, IsAnonymous: true, Reason: "spam"}
	named := models.AbuseReport{ID: uuid.New(), ReporterID: reporter, IsAnonymous: false, Reason: "spam"}

	t.Run("admins always see the reporter", func(t *testing.T) {
		view := NewAbuseReportView(&anonymous, models.RoleAdmin)
		require.NotNil(t, view.ReporterID)
		assert.Equal(t, reporter, *view.ReporterID)
	})

	t.Run("anonymous complaints hide the reporter from everyone else", func(t *testing.T) {
		for _, role := range []string{models.RoleUser, models.RoleResolver} {
			view := NewAbuseReportView(&anonymous, role)
			assert.Nil(t, view.ReporterID, "role %s", role)
			assert.True(t, view.IsAnonymous)
		}
	})

	t.Run("named complaints show the reporter to any viewer", func(t *testing.T) {
		view := NewAbuseReportView(&named, models.RoleUser)
		require.NotNil(t, view.ReporterID)
		assert.Equal(t, reporter, *view.ReporterID)
	})
}

func TestNewIssueReportResponse(t *testing.T) {
	reporter := uuid.New()
	report := models.IssueReport{
		ID:       uuid.New(),
		AuthorID: uuid.New(),
		Text:     "leaning fence",
		Tags:     datatypes.JSON(`["#hazard"]`),
		Status:   models.StatusUnderReview,
		Comments: []models.Comment{{
			ID:   uuid.New(),
			Text: "agreed",
			AbuseReports: []models.AbuseReport{
				{ID: uuid.New(), ReporterID: reporter, IsAnonymous: true, Reason: "off topic"},
			},
		}},
		AbuseReports: []models.AbuseReport{
			{ID: uuid.New(), ReporterID: reporter, IsAnonymous: true, Reason: "spam"},
		},
	}

	resp := NewIssueReportResponse(&report, models.RoleUser)

	assert.Equal(t, []string{"#hazard"}, resp.Tags)
	assert.Equal(t, []string{}, resp.Mentions)
	assert.NotNil(t, resp.Reactions)

	// The redaction rule reaches nested comment complaints too.
	require.Len(t, resp.AbuseReports, 1)
	assert.Nil(t, resp.AbuseReports[0].ReporterID)
	require.Len(t, resp.Comments, 1)
	require.Len(t, resp.Comments[0].AbuseReports, 1)
	assert.Nil(t, resp.Comments[0].AbuseReports[0].ReporterID)

	adminResp := NewIssueReportResponse(&report, models.RoleAdmin)
	require.NotNil(t, adminResp.AbuseReports[0].ReporterID)
	assert.Equal(t, reporter, *adminResp.AbuseReports[0].ReporterID)
}
