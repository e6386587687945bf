package api

import (
	"net/http"

	"github.com/ericogr/energy-duel/internal/constants"
	"github.com/ericogr/energy-duel/internal/game"
	"github.com/ericogr/energy-duel/internal/logging"

	"github.com/gin-gonic/gin"
)

type AdventureRequest struct {
	Class      game.ClassID    `json:"class"`
	Difficulty game.Difficulty `json:"difficulty"`
}

type NodeRequest struct {
	NodeID string `json:"node_id"`
}

type ShopRequest struct {
	ItemID string `json:"item_id"`
}

type LootRequest struct {
	Index *int `json:"index"`
}

func (h *GameHandler) CreateAdventure(c *gin.Context) {
	var req AdventureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	sess, err := h.svc.StartAdventure(req.Class, req.Difficulty)
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedCreateSession)
		return
	}
	logging.Info("adventure created", logging.Fields{
		constants.LogFieldSession: sess.Code,
		constants.LogFieldClass:   sess.Class,
		constants.LogFieldDiff:    sess.Difficulty,
		constants.LogFieldClient:  c.ClientIP(),
	})
	respond(c, sess, nil)
}

func (h *GameHandler) SelectMapNode(c *gin.Context) {
	code, ok := sessionCode(c)
	if !ok {
		return
	}
	var req NodeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.NodeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	sess, accepted, err := h.svc.SelectMapNode(code, req.NodeID)
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedUpdateSession)
		return
	}
	respond(c, sess, gin.H{constants.JSONKeyAccepted: accepted})
}

func (h *GameHandler) PurchaseShopItem(c *gin.Context) {
	code, ok := sessionCode(c)
	if !ok {
		return
	}
	var req ShopRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ItemID == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	sess, accepted, err := h.svc.PurchaseShopItem(code, req.ItemID)
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedUpdateSession)
		return
	}
	respond(c, sess, gin.H{constants.JSONKeyAccepted: accepted})
}

func (h *GameHandler) LeaveShop(c *gin.Context) {
	code, ok := sessionCode(c)
	if !ok {
		return
	}
	sess, err := h.svc.LeaveShop(code)
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedUpdateSession)
		return
	}
	respond(c, sess, nil)
}

// SelectLoot takes one post-battle reward. The index is a pointer so that
// a missing field is told apart from the first choice.
func (h *GameHandler) SelectLoot(c *gin.Context) {
	code, ok := sessionCode(c)
	if !ok {
		return
	}
	var req LootRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Index == nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	sess, accepted, err := h.svc.SelectLoot(code, *req.Index)
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedUpdateSession)
		return
	}
	respond(c, sess, gin.H{constants.JSONKeyAccepted: accepted})
}
