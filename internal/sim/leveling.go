package sim

import (
	"time"

	"github.com/TJ42-dev/Block-Town-Survivors/internal/progression"
)

// collectPickups heals from power-ups (only when hurt) and banks experience
// from bones in reach.
func (s *Simulation) collectPickups(now time.Duration) {
	t := s.cfg.Tuning

	if len(s.powerUps) > 0 {
		reach := t.Player.Radius + t.Pickups.PowerUpRadius
		reachSq := reach * reach
		effMax := s.maxHealth()
		kept := s.powerUps[:0]
		for _, p := range s.powerUps {
			if s.player.DistSq(p.Position) < reachSq && s.health < effMax {
				s.health = min(effMax, s.health+p.Value)
				continue
			}
			kept = append(kept, p)
		}
		s.powerUps = kept
	}

	if len(s.bones) > 0 {
		reach := t.Player.Radius + t.Pickups.BoneRadius
		reachSq := reach * reach
		gain := 0
		kept := s.bones[:0]
		for _, b := range s.bones {
			if s.player.DistSq(b.Position) < reachSq {
				gain += b.Value
				continue
			}
			kept = append(kept, b)
		}
		s.bones = kept
		if gain > 0 {
			s.gainExp(now, gain)
		}
	}
}

// gainExp adds experience and opens a level-up when the requirement is met.
// The overflow is carried into the new level.
func (s *Simulation) gainExp(now time.Duration, gain int) {
	next := s.exp + gain
	if next >= s.expReq {
		s.levelUp(now, next-s.expReq)
		return
	}
	s.exp = next
}

func (s *Simulation) levelUp(now time.Duration, overflow int) {
	s.level++
	s.exp = overflow
	s.expReq = progression.ExpRequirement(s.level)
	s.pending = progression.PerkOptions(s.rng, s.weapon.ID, s.weaponLevel)
	s.levelingUp = true
	s.updateFrozen(now)

	s.logger.Debug("level up", "level", s.level, "overflow", overflow, "next", s.expReq)
	s.emit(LevelUpReady{Level: s.level, Options: s.PendingPerks()})
}

func (s *Simulation) applyPerk(p progression.Perk) {
	switch p.Type {
	case progression.PerkWeaponUpgrade:
		if s.weaponLevel < progression.MaxTier(s.weapon.ID) {
			s.weaponLevel++
			s.weapon = progression.WeaponAt(s.weapon.ID, s.weaponLevel)
			s.ammo = s.weapon.MaxAmmo
		}
	case progression.PerkSpeed:
		s.mods.Speed += p.Value
	case progression.PerkDamage:
		s.mods.Damage += p.Value
	case progression.PerkFireRate:
		s.mods.FireRate += p.Value
	case progression.PerkMaxHP:
		effMax := s.maxHealth()
		s.mods.MaxHP += p.Value
		s.health += effMax * p.Value
	case progression.PerkHeal:
		effMax := s.maxHealth()
		s.health = min(effMax, s.health+effMax*p.Value)
	}
}

// hud is the last state reported to listeners.
type hud struct {
	ammo, maxAmmo     int
	reloading         bool
	health, maxHealth float64
	enemies           int
	money             int
	exp, expReq, lvl  int
}

// notify emits a change event for every HUD value that differs from the
// last report, plus one TimeElapsed per survived second.
func (s *Simulation) notify() {
	cur := hud{
		ammo:      s.ammo,
		maxAmmo:   s.weapon.MaxAmmo,
		reloading: s.reloading,
		health:    s.health,
		maxHealth: s.maxHealth(),
		enemies:   len(s.enemies),
		money:     s.money,
		exp:       s.exp,
		expReq:    s.expReq,
		lvl:       s.level,
	}
	prev, first := s.hud, !s.hudSent
	s.hud, s.hudSent = cur, true

	if first || cur.ammo != prev.ammo || cur.maxAmmo != prev.maxAmmo {
		s.emit(AmmoChanged{Current: cur.ammo, Max: cur.maxAmmo})
	}
	if first || cur.reloading != prev.reloading {
		s.emit(ReloadChanged{Reloading: cur.reloading})
	}
	if first || cur.health != prev.health || cur.maxHealth != prev.maxHealth {
		s.emit(HealthChanged{Health: cur.health, MaxHealth: cur.maxHealth})
	}
	if first || cur.enemies != prev.enemies {
		s.emit(WaveChanged{Enemies: cur.enemies})
	}
	if first || cur.money != prev.money {
		s.emit(MoneyChanged{Money: cur.money})
	}
	if first || cur.exp != prev.exp || cur.expReq != prev.expReq || cur.lvl != prev.lvl {
		s.emit(ExpChanged{Current: cur.exp, Required: cur.expReq, Level: cur.lvl})
	}

	if s.state == StateRunning || s.state == StateTerminated {
		if secs := int(s.elapsed(s.now) / time.Second); secs > s.lastSecs {
			s.lastSecs = secs
			s.emit(TimeElapsed{Seconds: secs})
		}
	}
}
