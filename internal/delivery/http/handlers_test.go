package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driverdash/backend/internal/repository/postgres"
	"github.com/driverdash/backend/internal/service"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	repo := postgres.NewMockRepository()
	mapSvc := service.NewMapService(repo)
	require.NoError(t, mapSvc.Load(context.Background()))
	chatSvc := service.NewChatService(nil)
	recommendSvc := service.NewRecommendService(mapSvc)

	app := fiber.New()
	SetupRoutes(app, mapSvc, chatSvc, recommendSvc, repo)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target, body string) (int, map[string]interface{}) {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	// Error responses from the default handler are plain text; leave the
	// map empty for those.
	var decoded map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp.StatusCode, decoded
}

func TestHealthCheck(t *testing.T) {
	app := newTestApp(t)

	status, body := doJSON(t, app, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestGetMapFrame(t *testing.T) {
	app := newTestApp(t)

	status, body := doJSON(t, app, "GET", "/api/v1/map/frame?city=1&condition=clear&hours=2&width=800&height=600", "")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, body["success"])

	data := body["data"].(map[string]interface{})
	markers := data["markers"].([]interface{})
	assert.Len(t, markers, 6)
}

func TestGetMapFrameBadCity(t *testing.T) {
	app := newTestApp(t)

	status, _ := doJSON(t, app, "GET", "/api/v1/map/frame?city=-1", "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestGetDemand(t *testing.T) {
	app := newTestApp(t)

	status, body := doJSON(t, app, "GET", "/api/v1/demand?city=1&condition=clear&hours=2", "")
	require.Equal(t, http.StatusOK, status)

	displays := body["data"].([]interface{})
	assert.Len(t, displays, 6)
}

func TestGetRecommendation(t *testing.T) {
	app := newTestApp(t)

	status, body := doJSON(t, app, "GET", "/api/v1/recommendation?city=1&condition=clear&hours=2&drivers=10", "")
	require.Equal(t, http.StatusOK, status)

	data := body["data"].(map[string]interface{})
	counts := data["counts"].([]interface{})
	require.Len(t, counts, 6)

	total := 0.0
	for _, c := range counts {
		total += c.(float64)
	}
	assert.Equal(t, 10.0, total)
}

func TestParseDuration(t *testing.T) {
	app := newTestApp(t)

	status, body := doJSON(t, app, "POST", "/api/v1/duration/parse", `{"text": "two and a half hours"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["detected"])
	assert.Equal(t, 2.5, body["hours"])

	_, body = doJSON(t, app, "POST", "/api/v1/duration/parse", `{"text": "gibberish"}`)
	assert.Equal(t, false, body["detected"])
	_, hasHours := body["hours"]
	assert.False(t, hasHours)
}

func TestChatSessionFlow(t *testing.T) {
	app := newTestApp(t)

	// Open a session; it arrives seeded with the welcome turn.
	status, body := doJSON(t, app, "POST", "/api/v1/chat/sessions", "")
	require.Equal(t, http.StatusCreated, status)
	data := body["data"].(map[string]interface{})
	id := data["id"].(string)
	require.NotEmpty(t, id)
	assert.Len(t, data["turns"].([]interface{}), 1)

	// Typed submission, then a simulated stream error.
	base := "/api/v1/chat/sessions/" + id
	status, _ = doJSON(t, app, "POST", base+"/messages", `{"text": "2.5"}`)
	require.Equal(t, http.StatusOK, status)
	status, _ = doJSON(t, app, "POST", base+"/error", `{"code": "no-speech", "message": "mic timeout"}`)
	require.Equal(t, http.StatusOK, status)

	// Log order: welcome, user "2.5", detection, mic error. State idle.
	status, body = doJSON(t, app, "GET", base, "")
	require.Equal(t, http.StatusOK, status)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, "idle", data["state"])
	assert.Equal(t, 2.5, data["last_hours"])

	turns := data["turns"].([]interface{})
	require.Len(t, turns, 4)
	first := turns[0].(map[string]interface{})
	second := turns[1].(map[string]interface{})
	third := turns[2].(map[string]interface{})
	fourth := turns[3].(map[string]interface{})
	assert.Equal(t, "bot", first["speaker"])
	assert.Equal(t, "2.5", second["text"])
	assert.Equal(t, "Detected 2.5 hours.", third["text"])
	assert.Equal(t, "bot", fourth["speaker"])

	// Close and verify the session is gone.
	status, _ = doJSON(t, app, "DELETE", base, "")
	require.Equal(t, http.StatusOK, status)
	status, _ = doJSON(t, app, "GET", base, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestTranscriptEndpoint(t *testing.T) {
	app := newTestApp(t)

	_, body := doJSON(t, app, "POST", "/api/v1/chat/sessions", "")
	id := body["data"].(map[string]interface{})["id"].(string)
	base := "/api/v1/chat/sessions/" + id

	// A final transcript runs the same sequence as typed input.
	status, body := doJSON(t, app, "POST", base+"/transcript", `{"transcript": "three hours", "is_final": true}`)
	require.Equal(t, http.StatusOK, status)

	data := body["data"].(map[string]interface{})
	turns := data["turns"].([]interface{})
	require.Len(t, turns, 3)
	assert.Equal(t, "Detected 3 hours.", turns[2].(map[string]interface{})["text"])
}

func TestChatSessionNotFound(t *testing.T) {
	app := newTestApp(t)

	status, _ := doJSON(t, app, "GET", "/api/v1/chat/sessions/missing", "")
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = doJSON(t, app, "POST", "/api/v1/chat/sessions/missing/messages", `{"text": "2"}`)
	assert.Equal(t, http.StatusNotFound, status)
}
