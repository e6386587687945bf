package api

import (
	"net/http"

	"github.com/ericogr/energy-duel/internal/constants"
	"github.com/ericogr/energy-duel/internal/game"
	"github.com/ericogr/energy-duel/internal/logging"
	"github.com/ericogr/energy-duel/internal/service"

	"github.com/gin-gonic/gin"
)

type ActionRequest struct {
	InstanceID string `json:"instance_id"`
	TargetID   int    `json:"target_id"`
}

type DiscardRequest struct {
	Indices []int `json:"indices"`
}

type AutoPlayRequest struct {
	Enabled bool `json:"enabled"`
}

// GetCatalog exposes the card, class and shop data the client renders from.
func (h *GameHandler) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Catalog())
}

// CreateSession starts a free-for-all or team match against bots.
func (h *GameHandler) CreateSession(c *gin.Context) {
	var req service.EncounterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	sess, err := h.svc.StartEncounter(req)
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedCreateSession)
		return
	}
	logging.Info("session created", logging.Fields{
		constants.LogFieldSession: sess.Code,
		constants.LogFieldMode:    sess.Mode,
		constants.LogFieldClient:  c.ClientIP(),
	})
	respond(c, sess, nil)
}

func (h *GameHandler) GetSession(c *gin.Context) {
	code, ok := sessionCode(c)
	if !ok {
		return
	}
	sess, err := h.svc.GetSession(code)
	if err != nil {
		writeServiceError(c, err, constants.ErrSessionNotFound)
		return
	}
	respond(c, sess, nil)
}

// QuitSession returns to the main menu, discarding the session.
func (h *GameHandler) QuitSession(c *gin.Context) {
	code, ok := sessionCode(c)
	if !ok {
		return
	}
	if err := h.svc.QuitToMenu(code); err != nil {
		writeServiceError(c, err, constants.ErrFailedDeleteSession)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *GameHandler) CommitAction(c *gin.Context) {
	h.commit(c, h.svc.CommitHumanAction)
}

func (h *GameHandler) CommitInstant(c *gin.Context) {
	h.commit(c, h.svc.CommitInstantAction)
}

func (h *GameHandler) commit(c *gin.Context, fn func(code, instanceID string, targetID int) (*game.Session, bool, error)) {
	code, ok := sessionCode(c)
	if !ok {
		return
	}
	var req ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	sess, accepted, err := fn(code, req.InstanceID, req.TargetID)
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedUpdateSession)
		return
	}
	respond(c, sess, gin.H{constants.JSONKeyAccepted: accepted})
}

// LockIn reveals all committed actions; resolution follows after the
// configured pacing delay, or on an explicit resolve call.
func (h *GameHandler) LockIn(c *gin.Context) {
	code, ok := sessionCode(c)
	if !ok {
		return
	}
	sess, err := h.svc.LockIn(code)
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedUpdateSession)
		return
	}
	respond(c, sess, nil)
}

func (h *GameHandler) ResolveRound(c *gin.Context) {
	code, ok := sessionCode(c)
	if !ok {
		return
	}
	sess, report, err := h.svc.ResolveRound(code)
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedUpdateSession)
		return
	}
	respond(c, sess, gin.H{constants.JSONKeyReport: report})
}

func (h *GameHandler) DiscardCards(c *gin.Context) {
	code, ok := sessionCode(c)
	if !ok {
		return
	}
	var req DiscardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	sess, accepted, err := h.svc.DiscardCards(code, req.Indices)
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedUpdateSession)
		return
	}
	respond(c, sess, gin.H{constants.JSONKeyAccepted: accepted})
}

func (h *GameHandler) SetAutoPlay(c *gin.Context) {
	code, ok := sessionCode(c)
	if !ok {
		return
	}
	var req AutoPlayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	sess, err := h.svc.SetAutoPlay(code, req.Enabled)
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedUpdateSession)
		return
	}
	respond(c, sess, nil)
}
