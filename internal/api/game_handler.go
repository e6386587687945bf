package api

import (
	"github.com/ericogr/energy-duel/internal/constants"
	"github.com/ericogr/energy-duel/internal/service"

	"github.com/gin-gonic/gin"
)

// GameHandler groups all session HTTP handlers.
type GameHandler struct {
	svc *service.Service
}

func NewGameHandler(svc *service.Service) *GameHandler {
	return &GameHandler{svc: svc}
}

// RegisterRoutes mounts the API under /api. Extra middleware, such as the
// rate limiter, applies to the session commands only.
func RegisterRoutes(router gin.IRouter, h *GameHandler, commandMiddleware ...gin.HandlerFunc) {
	apiRoutes := router.Group(constants.RouteAPIPrefix)
	apiRoutes.GET(constants.RouteHealth, Health)
	apiRoutes.GET(constants.RouteVersion, Version)
	apiRoutes.GET(constants.RouteCatalog, h.GetCatalog)

	cmds := apiRoutes.Group("")
	cmds.Use(commandMiddleware...)
	{
		cmds.POST(constants.RouteSessions, h.CreateSession)
		cmds.POST(constants.RouteAdventures, h.CreateAdventure)
		cmds.GET(constants.RouteSessionByCode, h.GetSession)
		cmds.DELETE(constants.RouteSessionByCode, h.QuitSession)
		cmds.POST(constants.RouteSessionAction, h.CommitAction)
		cmds.POST(constants.RouteSessionInstant, h.CommitInstant)
		cmds.POST(constants.RouteSessionLockIn, h.LockIn)
		cmds.POST(constants.RouteSessionResolve, h.ResolveRound)
		cmds.POST(constants.RouteSessionDiscard, h.DiscardCards)
		cmds.POST(constants.RouteSessionMap, h.SelectMapNode)
		cmds.POST(constants.RouteSessionShop, h.PurchaseShopItem)
		cmds.POST(constants.RouteSessionShopLeave, h.LeaveShop)
		cmds.POST(constants.RouteSessionLoot, h.SelectLoot)
		cmds.POST(constants.RouteSessionAutoPlay, h.SetAutoPlay)
	}
}
