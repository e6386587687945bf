package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/ericogr/energy-duel/internal/constants"
	"github.com/ericogr/energy-duel/internal/game"
	"github.com/ericogr/energy-duel/internal/logging"
	"github.com/ericogr/energy-duel/internal/service"

	"github.com/gin-gonic/gin"
)

var sessionCodeRegex = regexp.MustCompile("^[A-Z0-9]{8}$")

func normalizeSessionCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// sessionCode reads and validates the :code path parameter. On failure it
// has already written the response.
func sessionCode(c *gin.Context) (string, bool) {
	code := normalizeSessionCode(c.Param("code"))
	if !sessionCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidSessionCode})
		return "", false
	}
	return code, true
}

// writeServiceError maps service errors onto HTTP statuses.
func writeServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrSessionNotFound})
	case errors.Is(err, service.ErrInvalidSetup):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidSetup, constants.JSONKeyMessage: err.Error()})
	case errors.Is(err, service.ErrNoActiveMatch):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrNoActiveMatch})
	case errors.Is(err, service.ErrWrongPhase):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrWrongPhase})
	case errors.Is(err, service.ErrNoAdventure):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrNoAdventure})
	default:
		logging.Error(fallback, err, logging.Fields{constants.LogFieldSession: c.Param("code")})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: fallback})
	}
}

// normalizeTimestamps recursively renames the gorm.Model keys (CreatedAt,
// UpdatedAt) to snake_case and drops the internal ID and DeletedAt.
func normalizeTimestamps(v interface{}) interface{} {
	switch vv := v.(type) {
	case map[string]interface{}:
		for k, val := range vv {
			vv[k] = normalizeTimestamps(val)
		}
		if val, ok := vv["CreatedAt"]; ok {
			vv["created_at"] = val
			delete(vv, "CreatedAt")
		}
		if val, ok := vv["UpdatedAt"]; ok {
			vv["updated_at"] = val
			delete(vv, "UpdatedAt")
		}
		delete(vv, "DeletedAt")
		delete(vv, "ID")
		return vv
	case []interface{}:
		for i := range vv {
			vv[i] = normalizeTimestamps(vv[i])
		}
		return vv
	default:
		return v
	}
}

// hideCards strips what the human may not see: the order of every draw
// pile, the bots' hands and, until the reveal, the bots' committed cards.
func hideCards(match map[string]interface{}) {
	planning := match["phase"] == string(game.PhasePlanning)
	cs, _ := match["combatants"].([]interface{})
	for _, raw := range cs {
		cb, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		if pile, ok := cb["draw_pile"].([]interface{}); ok {
			cb["draw_count"] = len(pile)
		} else {
			cb["draw_count"] = 0
		}
		delete(cb, "draw_pile")
		if human, _ := cb["is_human"].(bool); human {
			continue
		}
		if hand, ok := cb["hand"].([]interface{}); ok {
			cb["hand_count"] = len(hand)
		} else {
			cb["hand_count"] = 0
		}
		delete(cb, "hand")
		if planning {
			delete(cb, "pending")
		}
	}
}

// MarshalSession renders a session for the presentation client.
func MarshalSession(s *game.Session) (interface{}, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	out = normalizeTimestamps(out)
	if root, ok := out.(map[string]interface{}); ok {
		if m, ok := root["match"].(map[string]interface{}); ok {
			hideCards(m)
		}
	}
	return out, nil
}

// respond writes the session plus any extra top-level keys.
func respond(c *gin.Context, s *game.Session, extra gin.H) {
	out, err := MarshalSession(s)
	if err != nil {
		logging.Error("failed to encode session", err, logging.Fields{constants.LogFieldSession: s.Code})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateSession})
		return
	}
	body := gin.H{constants.JSONKeySession: out}
	for k, v := range extra {
		body[k] = v
	}
	c.Header(constants.CacheControlHeader, constants.CacheControlNoCache)
	c.JSON(http.StatusOK, body)
}
