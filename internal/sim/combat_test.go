package sim

import (
	"testing"

	"github.com/TJ42-dev/Block-Town-Survivors/internal/core"
	"github.com/TJ42-dev/Block-Town-Survivors/internal/mapgen"
	"github.com/TJ42-dev/Block-Town-Survivors/internal/progression"
)

func TestEnemyDiesOnSecondHit(t *testing.T) {
	s, rec := newQuietSim(t, nil)
	target := core.V2(5, 0)
	id := s.addEnemy(target, 100, 0)

	s.addProjectile(core.V2(4.9, 0), core.V2(1, 0), 60, 0)
	s.Tick(10*ms, core.Input{})

	if len(s.enemies) != 1 || s.enemies[0].Health != 40 {
		t.Fatalf("after first hit enemies=%v, expected one enemy at 40 health", s.enemies)
	}
	if len(s.projectiles) != 0 {
		t.Errorf("projectiles = %d, expected the hit projectile removed", len(s.projectiles))
	}
	if rec.count("enemyHit") != 1 {
		t.Errorf("enemyHit events = %d, expected 1", rec.count("enemyHit"))
	}

	s.addProjectile(core.V2(4.9, 0), core.V2(1, 0), 60, 10*ms)
	s.Tick(20*ms, core.Input{})

	if len(s.enemies) != 0 {
		t.Fatalf("enemies = %d after second hit, expected 0", len(s.enemies))
	}
	if _, ok := s.positions[id]; ok {
		t.Error("dead enemy still in the position map")
	}
	if len(s.bones) != 1 || s.bones[0].Position != target || s.bones[0].Value != 20 {
		t.Errorf("bones = %+v, expected one 20 exp bone at %v", s.bones, target)
	}
	if s.kills != 1 || s.money != 10 || s.moneyEarned != 10 {
		t.Errorf("kills=%d money=%d earned=%d, expected 1/10/10", s.kills, s.money, s.moneyEarned)
	}
	if rec.count("enemyKilled") != 1 {
		t.Errorf("enemyKilled events = %d, expected 1", rec.count("enemyKilled"))
	}
}

func TestSimultaneousKillCountsOnce(t *testing.T) {
	s, rec := newQuietSim(t, nil)
	s.addEnemy(core.V2(5, 0), 100, 0)
	s.addProjectile(core.V2(4.9, 0), core.V2(1, 0), 60, 0)
	s.addProjectile(core.V2(4.95, 0.05), core.V2(1, 0), 60, 0)

	s.Tick(10*ms, core.Input{})

	if len(s.enemies) != 0 {
		t.Errorf("enemies = %d, expected 0", len(s.enemies))
	}
	if len(s.projectiles) != 0 {
		t.Errorf("projectiles = %d, expected both consumed", len(s.projectiles))
	}
	if len(s.bones) != 1 {
		t.Errorf("bones = %d, expected 1", len(s.bones))
	}
	if s.kills != 1 || s.money != 10 {
		t.Errorf("kills=%d money=%d, expected one kill worth 10", s.kills, s.money)
	}
	if rec.count("enemyKilled") != 1 || rec.count("enemyHit") != 0 {
		t.Errorf("enemyKilled=%d enemyHit=%d, expected 1 and 0", rec.count("enemyKilled"), rec.count("enemyHit"))
	}
}

func TestProjectileExpiresAndHitsTerrain(t *testing.T) {
	m := &mapgen.Map{
		Buildings: []mapgen.Building{{Position: core.Vec3{10, 0, 0}, Size: core.Vec3{2, 5, 2}}},
		Trees:     []mapgen.Tree{{Position: core.Vec3{0, 0, 10}, Scale: 1}},
	}
	cfg := DefaultConfig()
	cfg.Tuning.Spawning.InitialEnemies = 0
	s := New(cfg, m)
	s.Start(0)

	// Building, tree, open ground.
	s.addProjectile(core.V2(9.5, 0), core.V2(1, 0), 10, 0)
	s.addProjectile(core.V2(0, 9.7), core.V2(0, 1), 10, 0)
	s.addProjectile(core.V2(-20, 0), core.V2(-1, 0), 10, 0)
	s.Tick(10*ms, core.Input{})
	if len(s.projectiles) != 1 {
		t.Fatalf("projectiles = %d, expected only the open-ground one", len(s.projectiles))
	}

	s.Tick(2000*ms, core.Input{})
	if len(s.projectiles) != 1 {
		t.Fatalf("projectile expired early at its TTL")
	}
	s.Tick(2001*ms, core.Input{})
	if len(s.projectiles) != 0 {
		t.Errorf("projectiles = %d after TTL, expected 0", len(s.projectiles))
	}
}

func TestShootRules(t *testing.T) {
	s, rec := newQuietSim(t, nil)
	aim := core.V2(10, 0)

	s.Tick(10*ms, core.Input{Fire: true, Aim: aim})
	if s.ammo != 11 || len(s.projectiles) != 1 {
		t.Fatalf("ammo=%d projectiles=%d after first shot, expected 11 and 1", s.ammo, len(s.projectiles))
	}
	if d := s.projectiles[0].Direction; d.X < 0.99 {
		t.Errorf("pistol direction = %v, expected towards +X", d)
	}
	if got, want := s.projectiles[0].Damage, s.damage(); got != want {
		t.Errorf("projectile damage = %v, expected %v", got, want)
	}

	// Semi-automatic: holding the trigger does not fire again.
	s.Tick(400*ms, core.Input{Fire: true, Aim: aim})
	if s.ammo != 11 {
		t.Errorf("ammo = %d while holding a semi-automatic trigger, expected 11", s.ammo)
	}

	// Re-pressing inside the fire interval is a no-op.
	s.Tick(410*ms, core.Input{Aim: aim})
	s.lastShot = 300 * ms
	s.Tick(420*ms, core.Input{Fire: true, Aim: aim})
	if s.ammo != 11 {
		t.Errorf("ammo = %d inside the fire interval, expected 11", s.ammo)
	}

	s.Tick(430*ms, core.Input{Aim: aim})
	s.Tick(600*ms, core.Input{Fire: true, Aim: aim})
	if s.ammo != 10 {
		t.Errorf("ammo = %d after the interval, expected 10", s.ammo)
	}
	if rec.count("shotFired") != 2 {
		t.Errorf("shotFired events = %d, expected 2", rec.count("shotFired"))
	}

	// Empty magazine reloads instead of firing.
	s.ammo = 0
	s.Tick(610*ms, core.Input{Aim: aim})
	s.Tick(1000*ms, core.Input{Fire: true, Aim: aim})
	if !s.reloading {
		t.Error("firing on empty did not start a reload")
	}
	if rec.count("shotFired") != 2 {
		t.Error("fired with an empty magazine")
	}

	// Firing while reloading is a no-op.
	s.Tick(1010*ms, core.Input{Aim: aim})
	s.Tick(1100*ms, core.Input{Fire: true, Aim: aim})
	if s.ammo != 0 {
		t.Errorf("ammo = %d while reloading, expected 0", s.ammo)
	}
}

func TestReloadWhenFullIsNoop(t *testing.T) {
	s, _ := newQuietSim(t, nil)
	s.Tick(10*ms, core.Input{Reload: true})
	if s.reloading {
		t.Error("reload started with a full magazine")
	}
}

func TestAutomaticAndPellets(t *testing.T) {
	t.Run("uzi fires while held", func(t *testing.T) {
		s, _ := newQuietSim(t, func(c *Config) { c.Options.CharacterID = progression.CharacterQuadrinity })
		for now := 10 * ms; now <= 500*ms; now += 10 * ms {
			s.Tick(now, core.Input{Fire: true, Aim: core.V2(0, -10)})
		}
		// 50ms interval from 10ms to 500ms
		if fired := 20 - s.ammo; fired != 10 {
			t.Errorf("uzi fired %d shots in 500ms, expected 10", fired)
		}
	})

	t.Run("shotgun pellets", func(t *testing.T) {
		s, rec := newQuietSim(t, func(c *Config) { c.Options.CharacterID = progression.CharacterHank })
		s.Tick(10*ms, core.Input{Fire: true, Aim: core.V2(0, 10)})
		if len(s.projectiles) != 5 || s.ammo != 5 {
			t.Errorf("projectiles=%d ammo=%d, expected 5 pellets from one shell", len(s.projectiles), s.ammo)
		}
		for _, p := range s.projectiles {
			if p.Direction.Z < 0.9 {
				t.Errorf("pellet direction %v outside the spread", p.Direction)
			}
		}
		var shot ShotFired
		for _, e := range rec.events {
			if e, ok := e.(ShotFired); ok {
				shot = e
			}
		}
		if shot.Stance != progression.StanceTwoHanded || shot.Pellets != 5 {
			t.Errorf("ShotFired = %+v, expected two-handed with 5 pellets", shot)
		}
	})
}

func TestContactDamageSharesInvulnerability(t *testing.T) {
	s, rec := newQuietSim(t, nil)
	s.addEnemy(core.V2(0.2, 0), 100, 3)
	s.addEnemy(core.V2(-0.2, 0), 100, 3)

	s.Tick(10*ms, core.Input{})
	if s.health != 85 {
		t.Errorf("health = %v after two attackers, expected one hit to 85", s.health)
	}
	s.Tick(500*ms, core.Input{})
	if s.health != 85 {
		t.Errorf("health = %v inside the invulnerability window, expected 85", s.health)
	}
	s.Tick(1010*ms, core.Input{})
	if s.health != 70 {
		t.Errorf("health = %v after the window, expected 70", s.health)
	}
	if rec.count("playerHit") != 2 {
		t.Errorf("playerHit events = %d, expected 2", rec.count("playerHit"))
	}
}

func TestGameOver(t *testing.T) {
	s, rec := newQuietSim(t, nil)
	s.kills = 4
	s.addEnemy(core.V2(0.1, 0), 100, 0)
	s.health = 10

	s.Tick(2500*ms, core.Input{})

	if s.State() != StateTerminated {
		t.Fatalf("State() = %v, expected terminated", s.State())
	}
	if s.health != 0 {
		t.Errorf("health = %v, expected 0", s.health)
	}
	want := Report{EnemiesKilled: 4, MoneyEarned: 0, MoneySpent: 0, TimeSurvived: 2, LevelReached: 1}
	if got := s.Report(); got != want {
		t.Errorf("Report() = %+v, expected %+v", got, want)
	}
	if rec.count("gameOver") != 1 {
		t.Errorf("gameOver events = %d, expected 1", rec.count("gameOver"))
	}

	snap := s.Snapshot()
	s.Tick(5000*ms, core.Input{Right: true, Fire: true})
	after := s.Snapshot()
	if snap.Hash() != after.Hash() {
		t.Error("run changed after game over")
	}
	if rec.count("gameOver") != 1 {
		t.Error("game over reported twice")
	}
}

func TestEnemiesChaseAndStop(t *testing.T) {
	s, _ := newQuietSim(t, nil)
	s.addEnemy(core.V2(10, 0), 100, 2)
	s.addEnemy(core.V2(0.5, 0.5), 100, 2) // distSq 0.5: holds position

	s.Tick(100*ms, core.Input{})
	if got := s.enemies[0].Position.X; got < 9.79 || got > 9.81 {
		t.Errorf("chasing enemy X = %v, expected 9.8", got)
	}
	if got := s.enemies[1].Position; got != core.V2(0.5, 0.5) {
		t.Errorf("close enemy moved to %v", got)
	}
	if got := s.positions[s.enemies[0].ID]; got != s.enemies[0].Position {
		t.Errorf("position map = %v, expected %v", got, s.enemies[0].Position)
	}
}

func TestPowerUpHealsOnlyWhenHurt(t *testing.T) {
	s, _ := newQuietSim(t, nil)
	s.powerUps = append(s.powerUps, PowerUp{ID: s.newID(), Kind: PowerUpHealth, Value: 50})

	s.Tick(10*ms, core.Input{})
	if len(s.powerUps) != 1 {
		t.Fatal("power-up consumed at full health")
	}

	s.health = 70
	s.Tick(20*ms, core.Input{})
	if len(s.powerUps) != 0 {
		t.Error("power-up not consumed when hurt")
	}
	if s.health != 100 {
		t.Errorf("health = %v, expected heal capped at 100", s.health)
	}
}

func TestPowerUpSchedule(t *testing.T) {
	s, _ := newQuietSim(t, func(c *Config) { c.Tuning.Spawning.IntervalMS = 1_000_000 })
	s.Tick(30000*ms, core.Input{})
	if len(s.powerUps) != 0 {
		t.Fatal("power-up spawned at exactly the interval")
	}
	s.Tick(30001*ms, core.Input{})
	if len(s.powerUps) != 1 {
		t.Fatalf("powerUps = %d, expected 1", len(s.powerUps))
	}
	if p := s.powerUps[0]; p.Value != 50 || p.Kind != PowerUpHealth {
		t.Errorf("power-up = %+v, expected a 50 HP health pack", p)
	}
}

func TestSprint(t *testing.T) {
	walk, _ := newQuietSim(t, nil)
	walk.Tick(100*ms, core.Input{Right: true})
	run, _ := newQuietSim(t, nil)
	run.Tick(100*ms, core.Input{Right: true, Sprint: true})

	if walk.player.X != 0.5 {
		t.Errorf("walk X = %v, expected 0.5", walk.player.X)
	}
	if run.player.X != 0.75 {
		t.Errorf("sprint X = %v, expected 0.75", run.player.X)
	}
}

func TestTickStepIsCapped(t *testing.T) {
	s, _ := newQuietSim(t, func(c *Config) { c.Tuning.Spawning.IntervalMS = 1_000_000 })
	s.Tick(3*1000*ms, core.Input{Right: true})
	if want := 5 * MaxStep.Seconds(); s.player.X != want {
		t.Errorf("X = %v after a long stall, expected one capped step of %v", s.player.X, want)
	}
}
