package generation

import (
	"errors"
	"math/rand"
	"testing"

	"projectz/server/models"
)

func TestItemPoolWeightsByRarity(t *testing.T) {
	catalog := testCatalog()
	pool, err := NewItemPool([]*models.Item{catalog[0], catalog[4]})
	if err != nil {
		t.Fatal(err)
	}
	// 2^5 + 2^1
	if pool.Len() != 34 {
		t.Fatalf("pool has %d entries", pool.Len())
	}

	counts := map[string]int{}
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 3400; i++ {
		counts[pool.Draw(rng).PrototypeID]++
	}
	if counts["bandage"] < 10*counts["grenade"] {
		t.Fatalf("rarity 5 should dominate rarity 1: %v", counts)
	}
}

func TestItemPoolRejectsBadCatalogs(t *testing.T) {
	if _, err := NewItemPool(nil); !errors.Is(err, ErrEmptyItemCatalog) {
		t.Fatalf("expected ErrEmptyItemCatalog, got %v", err)
	}
	bad := &models.Item{ID: "x", Name: "x", Kind: models.KindMelee, Rarity: 9, Melee: &models.Melee{}}
	if _, err := NewItemPool([]*models.Item{bad}); err == nil {
		t.Fatal("rarity 9 should be rejected")
	}
}

func TestDrawReturnsIndependentCopies(t *testing.T) {
	pistol := testCatalog()[3]
	pool, err := NewItemPool([]*models.Item{pistol})
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(1))
	a, b := pool.Draw(rng), pool.Draw(rng)
	a.Firearm.Ammo = 0
	if b.Firearm.Ammo != 24 || pistol.Firearm.Ammo != 24 {
		t.Fatal("drawn items share their payload")
	}
	if a.PrototypeID != "pistol" {
		t.Fatalf("prototype id %q", a.PrototypeID)
	}
}

func TestPopulateRoom(t *testing.T) {
	room := models.Rect{Start: models.Point{X: 2, Y: 2}, End: models.Point{X: 12, Y: 12}}

	t.Run("safe rooms get no zombies", func(t *testing.T) {
		l := newTestLayout(64, 64, 3)
		fillFloor(l, room)
		for i := 0; i < 200; i++ {
			l.spawner.PopulateRoom(room, true)
		}
		items, zombies := l.m.Chunks.Counts()
		if zombies != 0 {
			t.Fatalf("%d zombies in a safe room", zombies)
		}
		if items == 0 {
			t.Fatal("safe rooms still hold items")
		}
	})

	t.Run("zombies stand on floor", func(t *testing.T) {
		l := newTestLayout(64, 64, 3)
		fillFloor(l, room)
		// a solid row through the room
		for x := 2; x <= 12; x++ {
			l.grid.SetTile(x, 6, models.TileRoomWall, models.Right, true)
		}
		for i := 0; i < 200; i++ {
			l.spawner.PopulateRoom(room, false)
		}
		zs := l.m.Chunks.AllZombies()
		if len(zs) == 0 {
			t.Fatal("expected zombies")
		}
		for _, z := range zs {
			if l.grid.TypeAt(z.Tile.X, z.Tile.Y) != models.TileFloor {
				t.Fatalf("zombie on %v", z.Tile)
			}
			if z.HP != models.ZombieHealth || z.X != z.Tile.X*models.TileSize {
				t.Fatalf("zombie state %+v", z)
			}
			if z.PatrolSeed < 0 || z.PatrolSeed >= patrolSeeds {
				t.Fatalf("patrol seed %d", z.PatrolSeed)
			}
		}
		for _, it := range l.m.Chunks.AllItems() {
			if it.Tile.Y == 6 || !room.Contains(it.Tile) {
				t.Fatalf("item on %v", it.Tile)
			}
			if it.State != models.ItemDropped {
				t.Fatalf("item state %q", it.State)
			}
		}
	})
}

func TestPopulateForest(t *testing.T) {
	l := newTestLayout(64, 64, 5)
	forest := models.Rect{End: models.Point{X: 40, Y: 40}}
	l.fillGrass(forest)
	fillFloor(l, models.Rect{Start: models.Point{X: 21}, End: models.Point{X: 40, Y: 40}})
	for i := 0; i < 50; i++ {
		l.spawner.PopulateForest(forest)
	}

	items, zombies := l.m.Chunks.Counts()
	if items == 0 || zombies == 0 {
		t.Fatalf("got %d items and %d zombies", items, zombies)
	}
	for _, z := range l.m.Chunks.AllZombies() {
		if l.grid.TypeAt(z.Tile.X, z.Tile.Y) != models.TileGrass {
			t.Fatalf("forest zombie on %v", z.Tile)
		}
	}
	for _, it := range l.m.Chunks.AllItems() {
		if l.grid.TypeAt(it.Tile.X, it.Tile.Y) == models.TileFloor {
			t.Fatalf("forest item indoors at %v", it.Tile)
		}
	}
}

func TestSpawnIDsFollowTheSeed(t *testing.T) {
	a := newTestLayout(64, 64, 77)
	b := newTestLayout(64, 64, 77)
	pa := a.spawner.PlaceItem(models.Point{X: 1, Y: 1})
	pb := b.spawner.PlaceItem(models.Point{X: 1, Y: 1})
	if pa.ID != pb.ID || pa.ID == "" {
		t.Fatalf("ids %q and %q", pa.ID, pb.ID)
	}
	if pa.X != models.TileSize || pa.Y != models.TileSize {
		t.Fatalf("pixel position %d,%d", pa.X, pa.Y)
	}
}
