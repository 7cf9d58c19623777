package generation

// Params holds the layout constants of the city generator
type Params struct {
	// Partition
	MaxArea           int     `yaml:"max_area"`
	MinSideLength     int     `yaml:"min_side_length"`
	HeightWidthRatio  float64 `yaml:"height_width_ratio"`
	MaxPartitionDepth int     `yaml:"max_partition_depth"`

	// Roads
	MainRoadSize int `yaml:"main_road_size"`
	RoadWidth    int `yaml:"road_width"`

	// Buildings and rooms
	MinBuildLength   int `yaml:"min_build_length"`
	BuildLengthRange int `yaml:"build_length_range"`
	MaxBuildPerSide  int `yaml:"max_build_per_side"`
	MaxRoomArea      int `yaml:"max_room_area"`
	MinBuildingSpan  int `yaml:"min_building_span"`

	// Spawns
	MaxZombiePerRoom   int     `yaml:"max_zombie_per_room"`
	MaxZombiePerForest int     `yaml:"max_zombie_per_forest"`
	MaxItemPerRoom     int     `yaml:"max_item_per_room"`
	MaxItemPerForest   int     `yaml:"max_item_per_forest"`
	RoadZombieChance   float64 `yaml:"road_zombie_chance"`
	AlleyZombieChance  float64 `yaml:"alley_zombie_chance"`
	TreeChance         float64 `yaml:"tree_chance"`

	// Safehouses
	SafehouseAttempts int `yaml:"safehouse_attempts"`
	StartRedrawAfter  int `yaml:"start_redraw_after"`

	MinWorldSize int `yaml:"min_world_size"`
}

// DefaultParams returns the stock city layout
func DefaultParams() Params {
	return Params{
		MaxArea:           3025,
		MinSideLength:     55,
		HeightWidthRatio:  0.5,
		MaxPartitionDepth: 32,

		MainRoadSize: 17,
		RoadWidth:    11,

		MinBuildLength:   15,
		BuildLengthRange: 5,
		MaxBuildPerSide:  5,
		MaxRoomArea:      100,
		MinBuildingSpan:  7,

		MaxZombiePerRoom:   2,
		MaxZombiePerForest: 10,
		MaxItemPerRoom:     1,
		MaxItemPerForest:   5,
		RoadZombieChance:   0.01,
		AlleyZombieChance:  0.01,
		TreeChance:         0.1,

		SafehouseAttempts: 10000,
		StartRedrawAfter:  10,

		MinWorldSize: 64,
	}
}

// normalized fills unset fields with defaults
func (p Params) normalized() Params {
	d := DefaultParams()
	setInt := func(v *int, def int) {
		if *v <= 0 {
			*v = def
		}
	}
	setFloat := func(v *float64, def float64) {
		if *v <= 0 {
			*v = def
		}
	}
	setInt(&p.MaxArea, d.MaxArea)
	setInt(&p.MinSideLength, d.MinSideLength)
	setFloat(&p.HeightWidthRatio, d.HeightWidthRatio)
	setInt(&p.MaxPartitionDepth, d.MaxPartitionDepth)
	setInt(&p.MainRoadSize, d.MainRoadSize)
	setInt(&p.RoadWidth, d.RoadWidth)
	setInt(&p.MinBuildLength, d.MinBuildLength)
	setInt(&p.BuildLengthRange, d.BuildLengthRange)
	setInt(&p.MaxBuildPerSide, d.MaxBuildPerSide)
	setInt(&p.MaxRoomArea, d.MaxRoomArea)
	setInt(&p.MinBuildingSpan, d.MinBuildingSpan)
	setInt(&p.MaxZombiePerRoom, d.MaxZombiePerRoom)
	setInt(&p.MaxZombiePerForest, d.MaxZombiePerForest)
	setInt(&p.MaxItemPerRoom, d.MaxItemPerRoom)
	setInt(&p.MaxItemPerForest, d.MaxItemPerForest)
	setFloat(&p.RoadZombieChance, d.RoadZombieChance)
	setFloat(&p.AlleyZombieChance, d.AlleyZombieChance)
	setFloat(&p.TreeChance, d.TreeChance)
	setInt(&p.SafehouseAttempts, d.SafehouseAttempts)
	setInt(&p.StartRedrawAfter, d.StartRedrawAfter)
	setInt(&p.MinWorldSize, d.MinWorldSize)
	return p
}

// maxBuildLength is the exclusive upper bound of a building side
func (p Params) maxBuildLength() int {
	return p.MinBuildLength + p.BuildLengthRange
}

// minPlazaSpan is the smallest End-Start span that fits two corner
// buildings side by side without overlap.
func (p Params) minPlazaSpan() int {
	return 2*(p.maxBuildLength()-1) + 1
}
