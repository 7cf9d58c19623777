package generation

import (
	"math/rand"

	"projectz/server/models"
)

// Plan is the result of partitioning a region: the roads to carve, in
// the order they were decided, and the terminal plazas.
type Plan struct {
	Cuts   []RoadCut
	Plazas []models.Rect
}

type partitionTask struct {
	rect  models.Rect
	depth int
}

// Partition recursively splits r with secondary roads until every piece is
// small enough or cannot be split further. It only decides; nothing is painted.
func Partition(r models.Rect, rng *rand.Rand, p Params) Plan {
	p = p.normalized()
	var plan Plan
	stack := []partitionTask{{rect: r}}

	for len(stack) > 0 {
		task := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		cut, first, second, ok := split(task.rect, rng, p)
		if !ok || task.depth >= p.MaxPartitionDepth {
			plan.Plazas = append(plan.Plazas, task.rect)
			continue
		}
		plan.Cuts = append(plan.Cuts, cut)
		// second pushed first so the first half is handled next
		stack = append(stack,
			partitionTask{rect: second, depth: task.depth + 1},
			partitionTask{rect: first, depth: task.depth + 1},
		)
	}
	return plan
}

// split decides one road through r. ok is false when r is a plaza.
func split(r models.Rect, rng *rand.Rand, p Params) (cut RoadCut, first, second models.Rect, ok bool) {
	w, h := r.Width(), r.Height()
	if w*h <= p.MaxArea {
		return cut, first, second, false
	}

	half := (p.RoadWidth + 1) / 2
	minSplit := 2*p.MinSideLength + p.RoadWidth
	ratio := p.HeightWidthRatio

	balanced := float64(w)*ratio < float64(h) && float64(h)*ratio < float64(w)
	if w > minSplit && ((balanced && rng.Float64() > 0.5) || float64(h)*ratio < float64(w)) {
		roadX := r.Start.X + p.MinSideLength + intn(rng, w-2*p.MinSideLength)
		cut = RoadCut{Vertical: true, Center: roadX, Origin: r.End.Y, Size: p.RoadWidth}
		first = models.Rect{Start: r.Start, End: models.Point{X: roadX - half, Y: r.End.Y}}
		second = models.Rect{Start: models.Point{X: roadX + half, Y: r.Start.Y}, End: r.End}
		return cut, first, second, true
	}

	if h > minSplit {
		roadY := r.Start.Y + p.MinSideLength + intn(rng, h-2*p.MinSideLength)
		cut = RoadCut{Vertical: false, Center: roadY, Origin: r.End.X, Size: p.RoadWidth}
		first = models.Rect{Start: r.Start, End: models.Point{X: r.End.X, Y: roadY - half}}
		second = models.Rect{Start: models.Point{X: r.Start.X, Y: roadY + half}, End: r.End}
		return cut, first, second, true
	}

	return cut, first, second, false
}
