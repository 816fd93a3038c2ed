package helpers

import (
	"fmt"
	"testing"
	"time"

	"alfredoramos.mx/outreach-tracker/app"
	"alfredoramos.mx/outreach-tracker/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countActivity(t *testing.T) int64 {
	t.Helper()

	var total int64
	require.NoError(t, app.DB().Model(&models.ActivityLog{}).Count(&total).Error)

	return total
}

func TestCreateWebsite(t *testing.T) {
	website, err := CreateWebsite(map[string]any{
		"website":       "  example.com  ",
		"contact_name":  "Jane Roe",
		"da":            float64(55),
		"traffic":       "12000",
		"status":        "New",
		"next_followup": "2026-09-15",
	}, "tester")
	require.NoError(t, err)
	require.NotNil(t, website)

	assert.Greater(t, website.ID, uint(0))
	assert.Equal(t, "example.com", website.Website)
	require.NotNil(t, website.DA)
	assert.Equal(t, 55, *website.DA)
	require.NotNil(t, website.Traffic)
	assert.Equal(t, 12000, *website.Traffic)
	require.NotNil(t, website.NextFollowup)
	assert.Equal(t, "2026-09-15", website.NextFollowup.Format("2006-01-02"))

	// Origin defaults and attribution
	require.NotNil(t, website.Source)
	assert.Equal(t, "manual", *website.Source)
	require.NotNil(t, website.CreatedBy)
	assert.Equal(t, "tester", *website.CreatedBy)

	assert.False(t, website.UpdatedAt.Before(website.CreatedAt))

	// Exactly one "created" entry, with no note
	entries, err := WebsiteActivity(website.ID, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.ActionCreated, entries[0].Action)
	assert.Nil(t, entries[0].Note)
	require.NotNil(t, entries[0].User)
	assert.Equal(t, "tester", *entries[0].User)
}

func TestCreateWebsiteRequiresWebsite(t *testing.T) {
	before := countActivity(t)

	_, err := CreateWebsite(map[string]any{"website": "   "}, "tester")
	assert.ErrorIs(t, err, ErrWebsiteRequired)

	_, err = CreateWebsite(map[string]any{"status": "New"}, "tester")
	assert.ErrorIs(t, err, ErrWebsiteRequired)

	// Rejected before any storage or log write
	assert.Equal(t, before, countActivity(t))
}

func TestCreateWebsiteIgnoresUnknownFields(t *testing.T) {
	website, err := CreateWebsite(map[string]any{
		"website":    "unknown-fields.com",
		"irrelevant": "value",
		"id":         float64(99999),
	}, "")
	require.NoError(t, err)

	assert.NotEqual(t, uint(99999), website.ID)
	assert.Nil(t, website.CreatedBy)
}

func TestUpdateWebsiteWithNotes(t *testing.T) {
	website, err := CreateWebsite(map[string]any{"website": "update-notes.com"}, "tester")
	require.NoError(t, err)

	updated, err := UpdateWebsite(website.ID, map[string]any{
		"status": "Contacted",
		"notes":  "Sent the first email.",
	}, "", "alice")
	require.NoError(t, err)

	require.NotNil(t, updated.Status)
	assert.Equal(t, "Contacted", *updated.Status)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, "Sent the first email.", *updated.Notes)

	entries, err := WebsiteActivity(website.ID, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Most recent first
	assert.Equal(t, models.ActionUpdate, entries[0].Action)
	require.NotNil(t, entries[0].Note)
	assert.Equal(t, "Sent the first email.", *entries[0].Note)
	require.NotNil(t, entries[0].User)
	assert.Equal(t, "alice", *entries[0].User)
	assert.Equal(t, models.ActionCreated, entries[1].Action)
}

func TestUpdateWebsiteWithoutNotesKey(t *testing.T) {
	website, err := CreateWebsite(map[string]any{"website": "update-plain.com"}, "tester")
	require.NoError(t, err)

	_, err = UpdateWebsite(website.ID, map[string]any{"status": "Follow-up"}, "", "")
	require.NoError(t, err)

	entries, err := WebsiteActivity(website.ID, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// No notes key in the payload means no note on the entry
	assert.Nil(t, entries[0].Note)
	assert.Nil(t, entries[0].User)
}

func TestUpdateWebsiteEmptyNotesStillLogged(t *testing.T) {
	website, err := CreateWebsite(map[string]any{
		"website": "update-empty-notes.com",
		"notes":   "old note",
	}, "tester")
	require.NoError(t, err)

	_, err = UpdateWebsite(website.ID, map[string]any{"notes": ""}, "", "")
	require.NoError(t, err)

	entries, err := WebsiteActivity(website.ID, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// The notes key was present, so the note mirrors the submitted value
	require.NotNil(t, entries[0].Note)
	assert.Equal(t, "", *entries[0].Note)
}

func TestUpdateWebsiteCustomAction(t *testing.T) {
	website, err := CreateWebsite(map[string]any{"website": "custom-action.com"}, "tester")
	require.NoError(t, err)

	_, err = UpdateWebsite(website.ID, map[string]any{"notes": "call scheduled"}, models.ActionNoteAdded, "bob")
	require.NoError(t, err)

	entries, err := WebsiteActivity(website.ID, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.ActionNoteAdded, entries[0].Action)
}

func TestUpdateWebsiteNotFound(t *testing.T) {
	before := countActivity(t)

	_, err := UpdateWebsite(9999999, map[string]any{"status": "Contacted"}, "", "tester")
	assert.ErrorIs(t, err, ErrWebsiteNotFound)

	// No partial side effects
	assert.Equal(t, before, countActivity(t))
}

func TestUpdateWebsiteRefreshesUpdatedAt(t *testing.T) {
	website, err := CreateWebsite(map[string]any{"website": "touch.com"}, "tester")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	updated, err := UpdateWebsite(website.ID, map[string]any{"assignee": "carol"}, "", "")
	require.NoError(t, err)

	assert.True(t, updated.UpdatedAt.After(website.UpdatedAt))
	assert.Equal(t, website.CreatedAt.Unix(), updated.CreatedAt.Unix())
}

func TestGetWebsite(t *testing.T) {
	website, err := CreateWebsite(map[string]any{"website": "get-by-id.com"}, "tester")
	require.NoError(t, err)

	found, err := GetWebsite(website.ID)
	require.NoError(t, err)
	assert.Equal(t, website.ID, found.ID)
	assert.Equal(t, "get-by-id.com", found.Website)

	_, err = GetWebsite(9999999)
	assert.ErrorIs(t, err, ErrWebsiteNotFound)
}

func TestListWebsitesFilters(t *testing.T) {
	// The assignee tag isolates this test's records in the shared store.
	assignee := fmt.Sprintf("list-tester-%d", time.Now().UnixNano())

	seed := []map[string]any{
		{"website": "list-a.com", "da": float64(40), "module": "Free", "status": "New", "assignee": assignee},
		{"website": "list-b.com", "da": float64(50), "module": "Outreach", "status": "Contacted", "assignee": assignee},
		{"website": "list-c.com", "da": float64(80), "module": "Outreach", "status": "Contacted", "assignee": assignee},
		{"website": "list-d.com", "da": float64(90), "module": "Pay", "status": "Approved", "assignee": assignee},
		{"website": "list-e.com", "module": "Pay", "status": "Approved", "assignee": assignee},
	}

	for _, fields := range seed {
		_, err := CreateWebsite(fields, "tester")
		require.NoError(t, err)
	}

	// No filter beyond the isolation tag: everything, ascending by id
	all, err := ListWebsites(WebsiteFilter{Assignee: assignee}, 0)
	require.NoError(t, err)
	require.Len(t, all, 5)

	for i := 1; i < len(all); i++ {
		assert.Greater(t, all[i].ID, all[i-1].ID)
	}

	// DA range is inclusive on both ends; records without a DA never match
	minDA, maxDA := 50, 80
	ranged, err := ListWebsites(WebsiteFilter{Assignee: assignee, MinDA: &minDA, MaxDA: &maxDA}, 0)
	require.NoError(t, err)
	require.Len(t, ranged, 2)
	assert.Equal(t, "list-b.com", ranged[0].Website)
	assert.Equal(t, "list-c.com", ranged[1].Website)

	// Conjunctive filters
	contacted, err := ListWebsites(WebsiteFilter{Assignee: assignee, Module: "Outreach", Status: "Contacted"}, 0)
	require.NoError(t, err)
	assert.Len(t, contacted, 2)

	// Empty result is not an error
	none, err := ListWebsites(WebsiteFilter{Assignee: assignee, Status: "Published"}, 0)
	require.NoError(t, err)
	assert.Empty(t, none)

	// Truncation
	limited, err := ListWebsites(WebsiteFilter{Assignee: assignee}, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "list-a.com", limited[0].Website)
}

func TestStatusOverwriteIsUnrestricted(t *testing.T) {
	website, err := CreateWebsite(map[string]any{"website": "any-status.com", "status": "Published"}, "tester")
	require.NoError(t, err)

	// There is no state machine: any string may replace any status.
	updated, err := UpdateWebsite(website.ID, map[string]any{"status": "totally made up"}, "", "")
	require.NoError(t, err)
	require.NotNil(t, updated.Status)
	assert.Equal(t, "totally made up", *updated.Status)
}

func TestDateFieldsKeepConfiguredCalendarDay(t *testing.T) {
	t.Setenv("TZ", "America/Mexico_City")

	// 23:30 local on the 15th is already past midnight UTC; the stored date
	// must stay on the submitted calendar day.
	website, err := CreateWebsite(map[string]any{
		"website":       "late-followup.com",
		"next_followup": "2026-09-15T23:30:00-06:00",
	}, "tester")
	require.NoError(t, err)

	require.NotNil(t, website.NextFollowup)
	assert.Equal(t, "2026-09-15", website.NextFollowup.Format("2006-01-02"))

	updated, err := UpdateWebsite(website.ID, map[string]any{
		"last_contacted": "2026-09-20T22:00:00-06:00",
	}, "", "")
	require.NoError(t, err)

	require.NotNil(t, updated.LastContacted)
	assert.Equal(t, "2026-09-20", updated.LastContacted.Format("2006-01-02"))
}
