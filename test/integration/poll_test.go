package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syncup/api/internal/core/domain"
)

func createPoll(t *testing.T, app *TestApp, token string, question string, options []string, multi bool) domain.PollSummary {
	t.Helper()

	payload := map[string]interface{}{
		"question":          question,
		"options":           options,
		"allow_multi_votes": multi,
	}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequest("POST", app.Server.URL+"/api/polls", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var summary domain.PollSummary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&summary))
	return summary
}

func castVote(t *testing.T, app *TestApp, token string, optionID string) *http.Response {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"poll_option_id": optionID})
	req, err := http.NewRequest("POST", app.Server.URL+"/api/votes", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	return resp
}

func TestCreateAndListPolls(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	ownerID, token := createUserAndToken(t, app.DB)
	summary := createPoll(t, app, token, "What is your favorite color?", []string{"Red", "Green", "Blue"}, false)

	assert.Equal(t, "What is your favorite color?", summary.Poll.Question)
	assert.Equal(t, ownerID, summary.Poll.OwnerID)
	assert.False(t, summary.Poll.IsClosed)
	require.Len(t, summary.Options, 3)
	for _, res := range summary.Options {
		assert.Equal(t, summary.Poll.ID, res.Option.PollID)
		assert.Equal(t, int64(0), res.VoteCount)
	}

	resp, err := app.Client.Get(app.Server.URL + "/api/polls")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var summaries []domain.PollSummary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, summary.Poll.ID, summaries[0].Poll.ID)
}

func TestCreatePollValidation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	_, token := createUserAndToken(t, app.DB)

	cases := []map[string]interface{}{
		{"question": "   ", "options": []string{"Yes", "No"}},
		{"question": "Only one option?", "options": []string{"Yes"}},
		{"question": "No options?", "options": []string{}},
		{"question": "Blank option?", "options": []string{"Red", "Blue", "   "}},
	}
	for _, payload := range cases {
		body, _ := json.Marshal(payload)
		req, err := http.NewRequest("POST", app.Server.URL+"/api/polls", bytes.NewReader(body))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})

		resp, err := app.Client.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "payload %v", payload)
	}

	var pollCount int
	require.NoError(t, app.DB.QueryRow("SELECT COUNT(*) FROM polls").Scan(&pollCount))
	assert.Equal(t, 0, pollCount, "failed creations must not leave partial rows")
}

func TestClosePoll(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	_, ownerToken := createUserAndToken(t, app.DB)
	_, otherToken := createUserAndToken(t, app.DB)
	summary := createPoll(t, app, ownerToken, "Close me?", []string{"A", "B"}, false)

	closeURL := fmt.Sprintf("%s/api/polls/%s/close", app.Server.URL, summary.Poll.ID)

	// Only the owner may close.
	req, err := http.NewRequest("POST", closeURL, nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: otherToken})
	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	req, err = http.NewRequest("POST", closeURL, nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: ownerToken})
	resp, err = app.Client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Voting on a closed poll is denied for everyone.
	resp = castVote(t, app, otherToken, summary.Options[0].Option.ID.String())
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestWinner(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	_, token := createUserAndToken(t, app.DB)
	summary := createPoll(t, app, token, "What is your favorite color?", []string{"Red", "Green", "Blue"}, false)
	winnerURL := fmt.Sprintf("%s/api/polls/%s/winner", app.Server.URL, summary.Poll.ID)

	// No votes yet: no winner.
	resp, err := app.Client.Get(winnerURL)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = castVote(t, app, token, summary.Options[0].Option.ID.String())
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = app.Client.Get(winnerURL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var winner domain.OptionResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&winner))
	assert.Equal(t, summary.Options[0].Option.ID, winner.Option.ID)
	assert.Equal(t, int64(1), winner.VoteCount)
}

func TestDeletePoll(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	_, token := createUserAndToken(t, app.DB)
	summary := createPoll(t, app, token, "Delete me?", []string{"A", "B"}, false)

	req, err := http.NewRequest("DELETE", fmt.Sprintf("%s/api/polls/%s", app.Server.URL, summary.Poll.ID), nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Soft deleted: row still present, listing hides it.
	var deletedCount int
	require.NoError(t, app.DB.QueryRow("SELECT COUNT(*) FROM polls WHERE id = $1 AND deleted_at IS NOT NULL", summary.Poll.ID).Scan(&deletedCount))
	assert.Equal(t, 1, deletedCount)

	resp, err = app.Client.Get(app.Server.URL + "/api/polls")
	require.NoError(t, err)
	defer resp.Body.Close()
	var summaries []domain.PollSummary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&summaries))
	assert.Empty(t, summaries)
}
