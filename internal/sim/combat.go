package sim

import (
	"time"

	"github.com/TJ42-dev/Block-Town-Survivors/internal/core"
)

// handleTrigger fires semi-automatic weapons on the press edge and
// automatic weapons while the trigger is held.
func (s *Simulation) handleTrigger(now time.Duration, in core.Input) {
	pressed := in.Fire && !s.fireHeld
	s.fireHeld = in.Fire
	if pressed || (in.Fire && s.weapon.Automatic) {
		s.shoot(now, in.Aim)
	}
	if in.Reload {
		s.reload(now)
	}
}

func (s *Simulation) shoot(now time.Duration, aim core.Vec2) {
	if s.health <= 0 || s.reloading {
		return
	}
	if now-s.lastShot < s.fireInterval() {
		return
	}
	if s.ammo <= 0 {
		s.reload(now)
		return
	}

	s.lastShot = now
	s.ammo--

	w := s.weapon
	pellets := max(w.PelletCount, 1)
	angle := aim.Sub(s.player).Angle()
	damage := s.damage()
	for range pellets {
		a := angle + (s.rng.Next()-0.5)*w.Spread
		s.projectiles = append(s.projectiles, Projectile{
			ID:        s.newID(),
			Position:  s.player,
			Direction: core.FromAngle(a),
			Speed:     w.ProjectileSpeed,
			Damage:    damage,
			CreatedAt: now,
		})
	}
	s.emit(ShotFired{Weapon: w.ID, Stance: w.Stance, Pellets: pellets})
}

func (s *Simulation) reload(now time.Duration) {
	if s.reloading || s.ammo == s.weapon.MaxAmmo {
		return
	}
	s.reloading = true
	s.reloadAt = now + msf(s.weapon.ReloadTime)
}

func (s *Simulation) finishReload(now time.Duration) {
	if s.reloading && now >= s.reloadAt {
		s.ammo = s.weapon.MaxAmmo
		s.reloading = false
	}
}

func (s *Simulation) movePlayer(in core.Input, dt float64) {
	dir := in.MoveDir()
	if dir.LenSq() == 0 {
		return
	}
	speed := s.speed()
	if in.Sprint {
		speed *= s.cfg.Tuning.Player.SprintMultiplier
	}
	s.player = s.index.Move(s.player, dir.Scale(speed*dt), s.cfg.Tuning.Player.Radius)
}

// moveEnemies runs contact damage and pursuit for every enemy, then
// rebuilds the position map that projectile resolution reads.
func (s *Simulation) moveEnemies(now time.Duration, dt float64) {
	t := s.cfg.Tuning
	reach := t.Player.Radius + t.Enemies.Radius + t.Enemies.AttackRangeBuffer
	reachSq := reach * reach

	clear(s.positions)
	for i := range s.enemies {
		e := &s.enemies[i]
		toPlayer := s.player.Sub(e.Position)
		distSq := toPlayer.LenSq()

		if distSq < reachSq {
			s.hitPlayer(now)
			if s.state == StateTerminated {
				return
			}
		}
		if distSq > t.Enemies.StopDistanceSq {
			e.Position = e.Position.Add(toPlayer.Normalize().Scale(e.Speed * dt))
		}
		s.positions[e.ID] = e.Position
	}
}

// hitPlayer applies contact damage. All enemies share one invulnerability
// window, so overlapping attackers do not stack.
func (s *Simulation) hitPlayer(now time.Duration) {
	t := s.cfg.Tuning
	if now-s.lastHit < t.Invulnerability() && s.health > 0 {
		return
	}
	s.lastHit = now
	s.health -= t.Enemies.ContactDamage
	if s.health < 0 {
		s.health = 0
	}
	s.emit(PlayerHit{Damage: t.Enemies.ContactDamage, Health: s.health})
	if s.health <= 0 {
		s.gameOver(now)
	}
}

// advanceProjectiles moves projectiles and resolves hits against the
// position map built this tick. Damage is summed per enemy before any
// enemy is removed, so several projectiles killing the same enemy in one
// tick count as one kill.
func (s *Simulation) advanceProjectiles(now time.Duration, dt float64) {
	t := s.cfg.Tuning
	ttl := t.ProjectileTTL()
	hitR := t.Enemies.Radius + t.Combat.HitPadding
	hitSq := hitR * hitR

	damage := make(map[EntityID]float64)
	var order []EntityID

	kept := s.projectiles[:0]
	for _, p := range s.projectiles {
		if now-p.CreatedAt > ttl {
			continue
		}
		p.Position = p.Position.Add(p.Direction.Scale(p.Speed * dt))
		if s.index.BlocksProjectile(p.Position) {
			continue
		}
		if id, ok := s.enemyAt(p.Position, hitSq); ok {
			if _, seen := damage[id]; !seen {
				order = append(order, id)
			}
			damage[id] += p.Damage
			continue
		}
		kept = append(kept, p)
	}
	s.projectiles = kept

	if len(order) > 0 {
		s.applyHits(now, order, damage)
	}
}

func (s *Simulation) enemyAt(p core.Vec2, hitSq float64) (EntityID, bool) {
	for _, e := range s.enemies {
		pos, ok := s.positions[e.ID]
		if !ok {
			continue
		}
		if p.DistSq(pos) < hitSq {
			return e.ID, true
		}
	}
	return 0, false
}

func (s *Simulation) applyHits(now time.Duration, order []EntityID, damage map[EntityID]float64) {
	t := s.cfg.Tuning
	for _, id := range order {
		for i := range s.enemies {
			e := &s.enemies[i]
			if e.ID != id {
				continue
			}
			e.Health -= damage[id]
			if e.Health > 0 {
				s.emit(EnemyHit{ID: e.ID, Type: e.Type, Damage: damage[id], Health: e.Health})
				break
			}
			pos := s.positions[id]
			s.bones = append(s.bones, Bone{
				ID:        s.newID(),
				Position:  pos,
				Value:     t.Pickups.BoneExp,
				CreatedAt: now,
			})
			s.kills++
			s.money += t.Enemies.MoneyPerKill
			s.moneyEarned += t.Enemies.MoneyPerKill
			s.emit(EnemyKilled{ID: e.ID, Type: e.Type, Position: pos})
			break
		}
	}

	alive := s.enemies[:0]
	for _, e := range s.enemies {
		if e.Health > 0 {
			alive = append(alive, e)
			continue
		}
		delete(s.positions, e.ID)
	}
	s.enemies = alive
}
