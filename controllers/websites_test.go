package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"alfredoramos.mx/outreach-tracker/helpers"
	"alfredoramos.mx/outreach-tracker/models"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp() *fiber.App {
	app := fiber.New()

	group := app.Group("/api/v1/websites")
	group.Post("/add", PostWebsite)
	group.Post("/:id/update", PostUpdateWebsite)
	group.Get("/:id", GetWebsite)

	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload map[string]any, actingUser string) (int, []byte) {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodPost, path, bytes.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	if len(actingUser) > 0 {
		req.Header.Set("X-Acting-User", actingUser)
	}

	res, err := app.Test(req)
	require.NoError(t, err)
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	return res.StatusCode, data
}

func TestPostUpdateWebsiteLiftsAction(t *testing.T) {
	app := newTestApp()

	website, err := helpers.CreateWebsite(map[string]any{"website": "lifted-action.com"}, "tester")
	require.NoError(t, err)

	// The action key steers the activity label and never reaches the record.
	status, body := postJSON(t, app, fmt.Sprintf("/api/v1/websites/%d/update", website.ID), map[string]any{
		"status": "Contacted",
		"action": models.ActionNoteAdded,
	}, "erin")
	require.Equal(t, fiber.StatusOK, status)

	payload := struct {
		Data map[string]any `json:"data"`
	}{}
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.NotContains(t, payload.Data, "action")

	entries, err := helpers.WebsiteActivity(website.ID, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.ActionNoteAdded, entries[0].Action)
	require.NotNil(t, entries[0].User)
	assert.Equal(t, "erin", *entries[0].User)

	updated, err := helpers.GetWebsite(website.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.Status)
	assert.Equal(t, "Contacted", *updated.Status)
	assert.Equal(t, "lifted-action.com", updated.Website)
}

func TestPostUpdateWebsiteDefaultAction(t *testing.T) {
	app := newTestApp()

	website, err := helpers.CreateWebsite(map[string]any{"website": "default-action.com"}, "tester")
	require.NoError(t, err)

	status, _ := postJSON(t, app, fmt.Sprintf("/api/v1/websites/%d/update", website.ID), map[string]any{
		"assignee": "frank",
	}, "")
	require.Equal(t, fiber.StatusOK, status)

	entries, err := helpers.WebsiteActivity(website.ID, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.ActionUpdate, entries[0].Action)
}

func TestPostUpdateWebsiteNotFound(t *testing.T) {
	app := newTestApp()

	status, _ := postJSON(t, app, "/api/v1/websites/9999999/update", map[string]any{
		"status": "Contacted",
	}, "tester")
	assert.Equal(t, fiber.StatusNotFound, status)
}
