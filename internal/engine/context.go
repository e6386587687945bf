package engine

import (
	"fmt"

	"github.com/ericogr/energy-duel/internal/game"
)

// Engine applies the combat rules of one match. It holds no match state;
// every call receives the match it works on.
type Engine struct {
	Catalog *game.Catalog
	Rand    game.Rand
}

func New(cat *game.Catalog, rng game.Rand) *Engine {
	if cat == nil {
		cat = game.DefaultCatalog()
	}
	return &Engine{Catalog: cat, Rand: rng}
}

// --- Round context and helpers ----------------------------------------
type roundContext struct {
	e *Engine
	m *game.Match
}

func newRoundContext(e *Engine, m *game.Match) *roundContext {
	return &roundContext{e: e, m: m}
}

func (rc *roundContext) add(cat game.LogCategory, format string, args ...any) {
	rc.m.AddLog(fmt.Sprintf(format, args...), cat)
}

func (rc *roundContext) class(c *game.Combatant) game.ClassData {
	cd, _ := rc.e.Catalog.Class(c.Class)
	return cd
}

func (rc *roundContext) minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
