package models

import "fmt"

// ItemKind tags which payload an Item carries
type ItemKind string

const (
	KindConsumable ItemKind = "consumable"
	KindMelee      ItemKind = "melee"
	KindFirearm    ItemKind = "firearm"
	KindThrowable  ItemKind = "throwable"
)

// ItemState is where an item instance currently lives
type ItemState string

const (
	ItemDropped   ItemState = "dropped"
	ItemInventory ItemState = "inventory"
)

// Rarity bounds. 1 is the rarest.
const (
	MinRarity = 1
	MaxRarity = 5
)

// Consumable restores health or stamina when used
type Consumable struct {
	Uses int `json:"uses" yaml:"uses"`
}

// Melee is a close range weapon
type Melee struct {
	SwingSpeed   int `json:"swing_speed" yaml:"swing_speed"`
	RechargeTime int `json:"recharge_time" yaml:"recharge_time"`
	Radius       int `json:"radius" yaml:"radius"`
	Angle        int `json:"angle" yaml:"angle"`
}

// Firearm is a ranged weapon
type Firearm struct {
	Ammo     int `json:"ammo" yaml:"ammo"`
	Magazine int `json:"magazine" yaml:"magazine"`
	FireRate int `json:"fire_rate" yaml:"fire_rate"`
	Range    int `json:"range" yaml:"range"`
}

// Throwable is a thrown explosive or distraction
type Throwable struct {
	FuseTime    int `json:"fuse_time" yaml:"fuse_time"`
	BlastRadius int `json:"blast_radius" yaml:"blast_radius"`
}

// Item is either a catalog prototype or a spawned instance of one.
// Exactly one payload pointer matching Kind is non-nil.
type Item struct {
	ID          string    `json:"id"`
	PrototypeID string    `json:"prototype_id"`
	Name        string    `json:"name"`
	Kind        ItemKind  `json:"kind"`
	Rarity      int       `json:"rarity"`
	EffectValue int       `json:"effect_value"`
	State       ItemState `json:"state"`
	Tile        Point     `json:"tile"`
	X           int       `json:"x"`
	Y           int       `json:"y"`

	Consumable *Consumable `json:"consumable,omitempty"`
	Melee      *Melee      `json:"melee,omitempty"`
	Firearm    *Firearm    `json:"firearm,omitempty"`
	Throwable  *Throwable  `json:"throwable,omitempty"`
}

// Clone returns a deep copy so instances never share payloads
func (i *Item) Clone() *Item {
	c := *i
	if i.Consumable != nil {
		v := *i.Consumable
		c.Consumable = &v
	}
	if i.Melee != nil {
		v := *i.Melee
		c.Melee = &v
	}
	if i.Firearm != nil {
		v := *i.Firearm
		c.Firearm = &v
	}
	if i.Throwable != nil {
		v := *i.Throwable
		c.Throwable = &v
	}
	return &c
}

func cloneItems(items []*Item) []*Item {
	if items == nil {
		return nil
	}
	out := make([]*Item, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}

// PlaceAt moves the item onto a tile and updates the pixel position
func (i *Item) PlaceAt(p Point) {
	i.Tile = p
	i.X = p.X * TileSize
	i.Y = p.Y * TileSize
	i.State = ItemDropped
}

// Validate checks the kind tag against the payload
func (i *Item) Validate() error {
	if i.Rarity < MinRarity || i.Rarity > MaxRarity {
		return fmt.Errorf("item %q: rarity %d outside [%d, %d]", i.ID, i.Rarity, MinRarity, MaxRarity)
	}

	payloads := 0
	for _, set := range []bool{i.Consumable != nil, i.Melee != nil, i.Firearm != nil, i.Throwable != nil} {
		if set {
			payloads++
		}
	}
	if payloads != 1 {
		return fmt.Errorf("item %q: expected exactly one payload, found %d", i.ID, payloads)
	}

	var ok bool
	switch i.Kind {
	case KindConsumable:
		ok = i.Consumable != nil
	case KindMelee:
		ok = i.Melee != nil
	case KindFirearm:
		ok = i.Firearm != nil
	case KindThrowable:
		ok = i.Throwable != nil
	default:
		return fmt.Errorf("item %q: unknown kind %q", i.ID, i.Kind)
	}
	if !ok {
		return fmt.Errorf("item %q: payload does not match kind %q", i.ID, i.Kind)
	}
	return nil
}

// GetID implements Entity
func (i *Item) GetID() string {
	return i.ID
}

// GetPosition implements Entity
func (i *Item) GetPosition() Position {
	return Position{X: i.X, Y: i.Y}
}
