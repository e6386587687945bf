package engine

import "github.com/ericogr/energy-duel/internal/game"

// reflectDamage is what a reflecting, invulnerable target sends back.
const reflectDamage = 1

// strike applies one hit of dmg from attacker to target and returns the
// damage that reached HP. Invulnerable targets take nothing and, when they
// also reflect, the attacker takes reflectDamage unmitigated.
func (rc *roundContext) strike(attacker, target *game.Combatant, dmg int, ignoresShield bool) int {
	if target.HasBuff(game.BuffInvulnerable) {
		if target.HasBuff(game.BuffReflect) {
			attacker.TakeDamage(reflectDamage)
			rc.add(game.LogCombat, "%s's attack is reflected back for %d damage", attacker.Name, reflectDamage)
		} else {
			rc.add(game.LogCombat, "%s is invulnerable", target.Name)
		}
		return 0
	}
	if !ignoresShield && target.Shield > 0 {
		absorbed := rc.minInt(dmg, target.Shield)
		target.Shield -= absorbed
		dmg -= absorbed
		if absorbed > 0 {
			rc.add(game.LogCombat, "%s's shield absorbs %d", target.Name, absorbed)
		}
	}
	target.TakeDamage(dmg)
	return dmg
}

// attack resolves an attack move against its targets and returns the
// damage that landed. Every target is remembered on the attacker for kill
// credit. On-hit rewards are applied separately by onHit.
func (rc *roundContext) attack(actor *game.Combatant, mv game.Move, targets []*game.Combatant) int {
	per := mv.Damage
	if mv.EnergyBurst {
		per = actor.Energy
		actor.Energy = 0
	}
	dealt := 0
	for _, t := range targets {
		if !containsID(actor.Struck, t.ID) {
			actor.Struck = append(actor.Struck, t.ID)
		}
		landed := 0
		for i := 0; i < mv.Strikes(); i++ {
			landed += rc.strike(actor, t, per, mv.IgnoresShield)
		}
		if landed > 0 {
			rc.add(game.LogCombat, "%s hits %s with %s for %d", actor.Name, t.Name, mv.Label, landed)
		}
		dealt += landed
	}
	return dealt
}

// onHit grants the move's on-hit HP and energy once. A knocked out actor
// gets nothing.
func (rc *roundContext) onHit(actor *game.Combatant, mv game.Move) {
	if !standing(actor) {
		return
	}
	healed := actor.GainHP(mv.OnHitHeal)
	energized := actor.GainEnergy(mv.OnHitEnergy + rc.class(actor).EnergyOnDamage)
	if healed > 0 || energized > 0 {
		rc.add(game.LogInfo, "%s recovers %d HP and %d energy", actor.Name, healed, energized)
	}
}

// targetsOf returns who a planned attack hits.
func (rc *roundContext) targetsOf(p plannedAction) []*game.Combatant {
	if p.move().Area {
		return areaTargets(rc.m, p.actor)
	}
	if p.target == nil || !p.target.IsAlive {
		return nil
	}
	return []*game.Combatant{p.target}
}

// grantKillRewards gives every surviving combatant that struck a fallen one
// this round one energy, plus one HP with the vampire perk. The energy is
// withheld when the round ends the match.
func (rc *roundContext) grantKillRewards() {
	final := EvaluateWinner(rc.m) != nil
	for i := range rc.m.Combatants {
		victim := &rc.m.Combatants[i]
		if !victim.IsAlive || victim.HP > 0 {
			continue
		}
		for j := range rc.m.Combatants {
			killer := &rc.m.Combatants[j]
			if killer.ID == victim.ID || !standing(killer) || !containsID(killer.Struck, victim.ID) {
				continue
			}
			if !final {
				killer.GainEnergy(1)
			}
			if killer.HasBuff(game.BuffVampire) {
				killer.GainHP(1)
			}
			rc.add(game.LogCombat, "%s is rewarded for bringing down %s", killer.Name, victim.Name)
		}
	}
}
