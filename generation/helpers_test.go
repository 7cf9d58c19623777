package generation

import (
	"math/rand"

	"github.com/rs/zerolog"

	"projectz/server/models"
	"projectz/server/world"
)

func testCatalog() []*models.Item {
	return []*models.Item{
		{ID: "bandage", Name: "Bandage", Kind: models.KindConsumable, Rarity: 5, EffectValue: 10, Consumable: &models.Consumable{Uses: 1}},
		{ID: "medkit", Name: "Medkit", Kind: models.KindConsumable, Rarity: 3, EffectValue: 50, Consumable: &models.Consumable{Uses: 1}},
		{ID: "bat", Name: "Bat", Kind: models.KindMelee, Rarity: 4, EffectValue: 20, Melee: &models.Melee{SwingSpeed: 5, RechargeTime: 30, Radius: 40, Angle: 90}},
		{ID: "pistol", Name: "Pistol", Kind: models.KindFirearm, Rarity: 2, EffectValue: 35, Firearm: &models.Firearm{Ammo: 24, Magazine: 8, FireRate: 3, Range: 400}},
		{ID: "grenade", Name: "Grenade", Kind: models.KindThrowable, Rarity: 1, EffectValue: 100, Throwable: &models.Throwable{FuseTime: 90, BlastRadius: 96}},
	}
}

// newTestLayout builds the per-run state over an empty map without carving anything
func newTestLayout(width, height int, seed int64) *layout {
	rng := rand.New(rand.NewSource(seed))
	p := DefaultParams()
	m := world.NewMap(width, height)
	pool, err := NewItemPool(testCatalog())
	if err != nil {
		panic(err)
	}
	l := &layout{
		rng:    rng,
		params: p,
		m:      m,
		grid:   m.Grid,
		logger: zerolog.Nop(),
	}
	l.spawner = newSpawnPlanner(rng, p, m, pool, l.logger)
	l.roads = &roadCarver{grid: m.Grid, spawner: l.spawner, params: p}
	return l
}

func solidType(tileType int) bool {
	return tileType == models.TileTreeTrunk || models.IsWallType(tileType)
}
