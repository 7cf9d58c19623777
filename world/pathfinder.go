package world

import (
	"container/heap"
	"errors"

	"github.com/zyedidia/generic/mapset"

	"projectz/server/models"
)

// ErrNoPath is returned when the goal cannot be reached
var ErrNoPath = errors.New("no path")

// DefaultSearchLimit caps the nodes a single query may expand
const DefaultSearchLimit = 200000

// Pathfinder runs 4-directional A* over the non-solid ground tiles
// of a finished grid. It only reads the grid.
type Pathfinder struct {
	grid  *TileGrid
	limit int
}

// NewPathfinder binds a pathfinder to a grid
func NewPathfinder(grid *TileGrid) *Pathfinder {
	return &Pathfinder{grid: grid, limit: DefaultSearchLimit}
}

// Walkable reports whether a tile can be entered
func (p *Pathfinder) Walkable(pt models.Point) bool {
	return p.grid.InBounds(pt.X, pt.Y) && !p.grid.Solid(pt.X, pt.Y)
}

// FindPath returns the tiles from start to goal, both included
func (p *Pathfinder) FindPath(start, goal models.Point) ([]models.Point, error) {
	if !p.Walkable(start) || !p.Walkable(goal) {
		return nil, ErrNoPath
	}

	openSet := make(priorityQueue, 0)
	heap.Init(&openSet)

	cameFrom := make(map[models.Point]models.Point)
	gScore := map[models.Point]int{start: 0}
	closed := mapset.New[models.Point]()

	heap.Push(&openSet, &queueItem{point: start, priority: manhattan(start, goal)})

	for openSet.Len() > 0 {
		current := heap.Pop(&openSet).(*queueItem).point
		if current == goal {
			return reconstructPath(cameFrom, current), nil
		}
		if closed.Has(current) {
			continue
		}
		closed.Put(current)
		if closed.Size() > p.limit {
			break
		}

		for _, neighbor := range []models.Point{
			{X: current.X + 1, Y: current.Y},
			{X: current.X - 1, Y: current.Y},
			{X: current.X, Y: current.Y + 1},
			{X: current.X, Y: current.Y - 1},
		} {
			if closed.Has(neighbor) || !p.Walkable(neighbor) {
				continue
			}
			tentative := gScore[current] + 1
			if g, seen := gScore[neighbor]; seen && tentative >= g {
				continue
			}
			cameFrom[neighbor] = current
			gScore[neighbor] = tentative
			heap.Push(&openSet, &queueItem{point: neighbor, priority: tentative + manhattan(neighbor, goal)})
		}
	}
	return nil, ErrNoPath
}

func reconstructPath(cameFrom map[models.Point]models.Point, current models.Point) []models.Point {
	path := []models.Point{current}
	for {
		prev, ok := cameFrom[current]
		if !ok {
			break
		}
		path = append(path, prev)
		current = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func manhattan(a, b models.Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

type queueItem struct {
	point    models.Point
	priority int
	index    int
}

type priorityQueue []*queueItem

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	return pq[i].priority < pq[j].priority
}

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue) Push(x any) {
	item := x.(*queueItem)
	item.index = len(*pq)
	*pq = append(*pq, item)
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[:n-1]
	return item
}
