package generation

import (
	"fmt"
	"math/rand"

	"projectz/server/models"
)

// SafehouseDistance is the minimum separation between the two safehouses on
// at least one axis for a width x height world.
func SafehouseDistance(width, height int) int {
	return (height + width) / 8
}

// SelectSafehouses picks two distinct plazas by rejection sampling.
//
// A pair is accepted when the positions differ by at least threshold on
// either axis. The goal is redrawn every attempt; after redrawAfter failed
// goals the start is redrawn too. Gives up after maxAttempts goal draws.
func SelectSafehouses(positions []models.Point, threshold int, rng *rand.Rand, maxAttempts, redrawAfter int) (start, goal int, err error) {
	n := len(positions)
	if n < 2 {
		return 0, 0, fmt.Errorf("%w: need two candidate plazas, have %d", ErrSafehouseSelectionTimeout, n)
	}

	start = rng.Intn(n - 1)
	count := 0
	for attempt := 0; attempt < maxAttempts; attempt++ {
		goal = 1 + rng.Intn(n-1)
		if goal != start && farEnough(positions[start], positions[goal], threshold) {
			return start, goal, nil
		}
		count++
		if count >= redrawAfter {
			start = rng.Intn(n - 1)
			count = 0
		}
	}
	return 0, 0, fmt.Errorf("%w: %d candidates, %d attempts, threshold %d",
		ErrSafehouseSelectionTimeout, n, maxAttempts, threshold)
}

func farEnough(a, b models.Point, threshold int) bool {
	return abs(a.X-b.X) >= threshold || abs(a.Y-b.Y) >= threshold
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
