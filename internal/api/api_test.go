package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ericogr/energy-duel/internal/adventure"
	"github.com/ericogr/energy-duel/internal/constants"
	"github.com/ericogr/energy-duel/internal/game"
	"github.com/ericogr/energy-duel/internal/service"
	"github.com/ericogr/energy-duel/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := service.New(storage.NewMemoryRepository(), game.DefaultCatalog(), adventure.DefaultConfig(), game.NewLockedRand(11), service.Options{})
	t.Cleanup(svc.Close)
	r := gin.New()
	RegisterRoutes(r, NewGameHandler(svc))
	return r
}

func do(t *testing.T, r http.Handler, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	out := map[string]interface{}{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w.Code, out
}

func sessionOf(t *testing.T, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	s, ok := body["session"].(map[string]interface{})
	require.True(t, ok, "response carries a session")
	return s
}

func createFFA(t *testing.T, r http.Handler) string {
	t.Helper()
	status, body := do(t, r, http.MethodPost, "/api/sessions", map[string]interface{}{
		"mode": game.ModeFFA, "seats": 3, "class": game.ClassStriker,
	})
	require.Equal(t, http.StatusOK, status)
	return sessionOf(t, body)["code"].(string)
}

func TestHealthAndVersion(t *testing.T) {
	r := newTestRouter(t)
	status, body := do(t, r, http.MethodGet, "/api/healthz", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])

	status, body = do(t, r, http.MethodGet, "/api/version", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "version")
}

func TestCatalog(t *testing.T) {
	r := newTestRouter(t)
	status, body := do(t, r, http.MethodGet, "/api/catalog", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "moves")
	assert.Contains(t, body, "classes")
}

func TestCreateSession_HidesOpponentCards(t *testing.T) {
	r := newTestRouter(t)
	status, body := do(t, r, http.MethodPost, "/api/sessions", map[string]interface{}{
		"mode": game.ModeFFA, "seats": 3, "class": game.ClassStriker,
	})
	require.Equal(t, http.StatusOK, status)
	s := sessionOf(t, body)

	assert.Regexp(t, "^[A-Z0-9]{8}$", s["code"])
	assert.Contains(t, s, "created_at")
	assert.NotContains(t, s, "CreatedAt")
	assert.NotContains(t, s, "ID")

	match := s["match"].(map[string]interface{})
	combatants := match["combatants"].([]interface{})
	require.Len(t, combatants, 3)
	for _, raw := range combatants {
		cb := raw.(map[string]interface{})
		assert.NotContains(t, cb, "draw_pile")
		assert.Contains(t, cb, "draw_count")
		if cb["is_human"] == true {
			assert.Len(t, cb["hand"], 5)
			continue
		}
		assert.NotContains(t, cb, "hand")
		assert.EqualValues(t, 5, cb["hand_count"])
	}
}

func TestCreateSession_Rejections(t *testing.T) {
	r := newTestRouter(t)
	status, _ := do(t, r, http.MethodPost, "/api/sessions", map[string]interface{}{
		"mode": game.ModeTeam, "seats": 3, "class": game.ClassStriker,
	})
	assert.Equal(t, http.StatusBadRequest, status)

	req := httptest.NewRequest(http.MethodPost, "/api/sessions", bytes.NewBufferString("{"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetSession_Codes(t *testing.T) {
	r := newTestRouter(t)
	status, _ := do(t, r, http.MethodGet, "/api/sessions/bad", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = do(t, r, http.MethodGet, "/api/sessions/ABCDEF12", nil)
	assert.Equal(t, http.StatusNotFound, status)

	code := createFFA(t, r)
	status, body := do(t, r, http.MethodGet, "/api/sessions/"+code, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, code, sessionOf(t, body)["code"])
}

func TestCommitAndResolve(t *testing.T) {
	r := newTestRouter(t)
	code := createFFA(t, r)

	status, body := do(t, r, http.MethodPost, "/api/sessions/"+code+"/action", ActionRequest{})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["accepted"])

	status, body = do(t, r, http.MethodPost, "/api/sessions/"+code+"/resolve", nil)
	require.Equal(t, http.StatusOK, status)
	report, ok := body["report"].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 1, report["round"])
	assert.NotEmpty(t, report["entries"])
	match := sessionOf(t, body)["match"].(map[string]interface{})
	assert.NotEmpty(t, match["log"])
}

func TestCommitUnknownCardIsRejected(t *testing.T) {
	r := newTestRouter(t)
	code := createFFA(t, r)
	status, body := do(t, r, http.MethodPost, "/api/sessions/"+code+"/action", ActionRequest{InstanceID: "nope", TargetID: 2})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["accepted"])
}

func TestQuitSession(t *testing.T) {
	r := newTestRouter(t)
	code := createFFA(t, r)
	status, _ := do(t, r, http.MethodDelete, "/api/sessions/"+code, nil)
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = do(t, r, http.MethodGet, "/api/sessions/"+code, nil)
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = do(t, r, http.MethodDelete, "/api/sessions/"+code, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAdventureFlow(t *testing.T) {
	r := newTestRouter(t)
	status, body := do(t, r, http.MethodPost, "/api/adventures", AdventureRequest{Class: game.ClassGuardian})
	require.Equal(t, http.StatusOK, status)
	s := sessionOf(t, body)
	code := s["code"].(string)
	assert.Equal(t, string(game.PhaseAdventureMap), s["phase"])

	status, _ = do(t, r, http.MethodPost, "/api/sessions/"+code+"/shop/leave", nil)
	assert.Equal(t, http.StatusConflict, status)
	status, _ = do(t, r, http.MethodPost, "/api/sessions/"+code+"/resolve", nil)
	assert.Equal(t, http.StatusConflict, status)

	status, body = do(t, r, http.MethodPost, "/api/sessions/"+code+"/map", NodeRequest{NodeID: "s1-r2-c0"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["accepted"])

	status, body = do(t, r, http.MethodPost, "/api/sessions/"+code+"/map", NodeRequest{NodeID: "s1-r0-c0"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["accepted"])

	status, _ = do(t, r, http.MethodPost, "/api/sessions/"+code+"/loot", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = do(t, r, http.MethodPost, "/api/adventures", AdventureRequest{Class: game.ClassBoss})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAutoPlayToggle(t *testing.T) {
	r := newTestRouter(t)
	code := createFFA(t, r)
	status, body := do(t, r, http.MethodPost, "/api/sessions/"+code+"/autoplay", AutoPlayRequest{Enabled: true})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, sessionOf(t, body)["auto_play"])
}

func TestHideCards_PendingHiddenUntilReveal(t *testing.T) {
	match := map[string]interface{}{
		"phase": string(game.PhasePlanning),
		"combatants": []interface{}{
			map[string]interface{}{"is_human": true, "hand": []interface{}{1}, "pending": "x", "draw_pile": []interface{}{1, 2}},
			map[string]interface{}{"is_human": false, "hand": []interface{}{1, 2}, "pending": "y"},
		},
	}
	hideCards(match)
	human := match["combatants"].([]interface{})[0].(map[string]interface{})
	bot := match["combatants"].([]interface{})[1].(map[string]interface{})
	assert.Equal(t, "x", human["pending"])
	assert.Equal(t, 2, human["draw_count"])
	assert.NotContains(t, bot, "pending")
	assert.Equal(t, 2, bot["hand_count"])
	assert.Equal(t, 0, bot["draw_count"])

	match["phase"] = string(game.PhaseRevealing)
	bot["pending"] = "y"
	hideCards(match)
	assert.Equal(t, "y", bot["pending"])
}
