package persistence

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"projectz/server/models"
)

func sampleWorld() *models.GameMap {
	ground := make([]models.Tile, 16*16)
	for i := range ground {
		ground[i] = models.NewTile(models.TileGrass, models.Up, false)
	}
	ground[5] = models.NewTile(models.TileInnerWall, models.Left, true)
	return &models.GameMap{
		Name:    "test",
		Seed:    "seed",
		Width:   16,
		Height:  16,
		Ground:  ground,
		Overlay: make([]models.Tile, 16*16),
		Items: []*models.Item{{
			ID: "i1", PrototypeID: "bat", Name: "Bat", Kind: models.KindMelee, Rarity: 3,
			State: models.ItemDropped, Tile: models.Point{X: 2, Y: 3}, X: 64, Y: 96,
			Melee: &models.Melee{SwingSpeed: 4},
		}},
		Zombies:     []*models.Zombie{models.NewZombie("z1", models.Point{X: 4, Y: 4}, 2)},
		Plazas:      []models.Rect{{End: models.Point{X: 15, Y: 15}}},
		PlayerStart: models.Point{X: 7, Y: 8},
	}
}

func TestJSONStoreWorldSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	store, err := NewJSONStore(path)
	if err != nil {
		t.Fatal(err)
	}
	want := sampleWorld()
	if err := store.SaveWorld("test", want); err != nil {
		t.Fatal(err)
	}

	reopened, err := NewJSONStore(path)
	if err != nil {
		t.Fatal(err)
	}
	got, err := reopened.LoadWorld("test")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("world changed on disk:\n got %+v\nwant %+v", got, want)
	}
	if !got.Ground[5].Solid() || got.Ground[5].Orientation() != models.Left {
		t.Fatal("packed bits lost")
	}
}

func TestJSONStorePlayers(t *testing.T) {
	store, err := NewJSONStore(filepath.Join(t.TempDir(), "db.json"))
	if err != nil {
		t.Fatal(err)
	}
	p := &models.Player{ID: "p1", Username: "alice", HP: 100, MaxHP: 100}
	if err := store.SavePlayer(p); err != nil {
		t.Fatal(err)
	}
	byName, err := store.LoadPlayerByUsername("alice")
	if err != nil || byName.ID != "p1" {
		t.Fatalf("got %+v, %v", byName, err)
	}
	if _, err := store.LoadPlayer("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.LoadWorld("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestJSONStoreConcurrentSaves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	store, err := NewJSONStore(path)
	if err != nil {
		t.Fatal(err)
	}

	const n = 64
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("p%d", i)
			errs <- store.SavePlayer(&models.Player{ID: id, Username: id, HP: 100, MaxHP: 100})
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatal(err)
		}
	}

	reopened, err := NewJSONStore(path)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < n; i++ {
		if _, err := reopened.LoadPlayer(fmt.Sprintf("p%d", i)); err != nil {
			t.Fatalf("player %d lost: %v", i, err)
		}
	}
}

func TestJSONStoreKeepsItsOwnPlayerCopy(t *testing.T) {
	store, err := NewJSONStore(filepath.Join(t.TempDir(), "db.json"))
	if err != nil {
		t.Fatal(err)
	}
	p := &models.Player{ID: "p1", Username: "alice", HP: 100, Inventory: []*models.Item{
		{ID: "i1", Name: "Bat", Kind: models.KindMelee, Rarity: 3, Melee: &models.Melee{}},
	}}
	if err := store.SavePlayer(p); err != nil {
		t.Fatal(err)
	}
	p.HP = 1
	p.Inventory[0].Name = "changed"
	p.Inventory = nil

	got, err := store.LoadPlayer("p1")
	if err != nil {
		t.Fatal(err)
	}
	if got.HP != 100 || len(got.Inventory) != 1 || got.Inventory[0].Name != "Bat" {
		t.Fatalf("stored player follows the caller: %+v", got)
	}
}
