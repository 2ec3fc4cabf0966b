package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/hunt/components"
)

// placePlayer moves the player to p and records it in the occupancy index.
func (g *Game) placePlayer(p components.Position) {
	g.player.Pos = p
	g.occupancy.SetPlayer(p)
}

// spawnPopulation creates the level's prey and wolves. Prey counts are the
// same on every level; wolves scale with the level number.
func (g *Game) spawnPopulation() {
	pop := g.cfg.Population

	g.spawnKind(components.KindRabbit, pop.Rabbits, pop.RabbitSpeed)
	g.spawnKind(components.KindSquirrel, pop.Squirrels, pop.SquirrelSpeed)
	g.spawnKind(components.KindWolf, pop.WolvesPerLevel*g.level, pop.WolfSpeed)
}

// spawnKind places up to count entities by random search over the grid.
// Attempts are capped, so a crowded grid yields fewer entities rather than
// an endless loop. Returns the number placed.
func (g *Game) spawnKind(kind components.Kind, count, speed int) int {
	if count <= 0 {
		return 0
	}

	width, height := g.terrain.Width(), g.terrain.Height()
	attempts := count * g.cfg.Population.SpawnAttemptFactor
	placed := 0

	for i := 0; i < attempts && placed < count; i++ {
		p := components.Position{X: g.rng.Intn(width), Y: g.rng.Intn(height)}

		if !g.occupancy.CanEnter(p, ecs.Entity{}) {
			continue
		}
		// Wolves never start within striking range of the player
		if kind.IsPredator() && p.Chebyshev(g.player.Pos) < g.cfg.Population.WolfClearance {
			continue
		}

		g.spawnAt(kind, p, speed)
		placed++
	}

	if placed < count {
		g.logger.Warn("spawn search exhausted",
			"kind", kind.String(),
			"requested", count,
			"placed", placed,
			"attempts", attempts,
		)
	}
	return placed
}

// spawnAt creates one entity on p without any placement checks.
func (g *Game) spawnAt(kind components.Kind, p components.Position, speed int) ecs.Entity {
	pos := p
	animal := components.Animal{Kind: kind}
	mover := components.Mover{Speed: speed}

	entity := g.animalMapper.NewEntity(&pos, &animal, &mover)
	g.occupancy.Place(entity, pos)

	// Track population by kind
	if kind.IsPrey() {
		g.numPrey++
	} else {
		g.numWolves++
	}

	return entity
}

// removeEntity deletes an entity from the world and the occupancy index.
// It must not be called while a query is open.
func (g *Game) removeEntity(e ecs.Entity) {
	if !g.world.Alive(e) {
		return
	}
	pos := g.posMap.Get(e)
	animal := g.animalMap.Get(e)

	g.occupancy.Remove(e, *pos)
	if animal.Kind.IsPrey() {
		g.numPrey--
	} else {
		g.numWolves--
	}
	g.world.RemoveEntity(e)
}
