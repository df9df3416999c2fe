package planner

import (
	"container/heap"
	"fmt"

	"splatpath/scene"
)

// SearchOption tweaks a single FindPath call.
type SearchOption func(*searchOptions)

type searchOptions struct {
	maxExpansions int
}

// MaxExpansions caps how many nodes the search may expand before
// giving up with ErrBudgetExceeded. n <= 0 means unlimited.
func MaxExpansions(n int) SearchOption {
	return func(o *searchOptions) { o.maxExpansions = n }
}

// The six axis-aligned unit moves of the lattice.
var moves = [6]scene.Voxel{
	{X: 1}, {X: -1},
	{Y: 1}, {Y: -1},
	{Z: 1}, {Z: -1},
}

// FindPath runs A* over the 6-connected voxel lattice, treating cells
// in occ as blocked, and returns a shortest path from start to goal
// inclusive. Step cost is uniform, the Manhattan heuristic is
// admissible and consistent for this move set, so the result is
// optimal. start == goal short-circuits to a one-element path.
//
// The lattice is conceptually infinite, so the search is clipped to
// the bounding box of the occupancy set plus the endpoints, expanded
// by one cell. Obstacles only exist inside that box, and any path
// through the free space outside it can be clamped onto the box shell
// without getting longer, so clipping preserves optimality while
// guaranteeing termination when the goal is sealed off.
func FindPath(start, goal scene.Voxel, occ scene.Occupancy, opts ...SearchOption) ([]scene.Voxel, error) {
	var o searchOptions
	for _, opt := range opts {
		opt(&o)
	}

	if start == goal {
		return []scene.Voxel{start}, nil
	}

	region := searchRegionFor(occ, start, goal)

	gScore := map[scene.Voxel]int{start: 0}
	cameFrom := make(map[scene.Voxel]scene.Voxel)
	closed := make(map[scene.Voxel]struct{})

	open := &nodeHeap{}
	heap.Push(open, &searchNode{voxel: start, priority: manhattan(start, goal)})

	pushes := 0
	expanded := 0
	for open.Len() > 0 {
		cur := heap.Pop(open).(*searchNode)
		if _, done := closed[cur.voxel]; done {
			continue
		}
		closed[cur.voxel] = struct{}{}

		if cur.voxel == goal {
			return reconstruct(cameFrom, goal), nil
		}

		expanded++
		if o.maxExpansions > 0 && expanded > o.maxExpansions {
			return nil, fmt.Errorf("%w: expanded %d nodes", ErrBudgetExceeded, expanded)
		}

		for _, d := range moves {
			next := scene.Voxel{X: cur.voxel.X + d.X, Y: cur.voxel.Y + d.Y, Z: cur.voxel.Z + d.Z}
			if !region.contains(next) || occ.Occupied(next) {
				continue
			}
			if _, done := closed[next]; done {
				continue
			}
			cost := gScore[cur.voxel] + 1
			if old, seen := gScore[next]; seen && cost >= old {
				continue
			}
			gScore[next] = cost
			cameFrom[next] = cur.voxel
			pushes++
			heap.Push(open, &searchNode{voxel: next, cost: cost, priority: cost + manhattan(next, goal), seq: pushes})
		}
	}

	return nil, fmt.Errorf("%w: %v -> %v", ErrNoPath, start, goal)
}

func manhattan(a, b scene.Voxel) int {
	return absInt(a.X-b.X) + absInt(a.Y-b.Y) + absInt(a.Z-b.Z)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func reconstruct(cameFrom map[scene.Voxel]scene.Voxel, goal scene.Voxel) []scene.Voxel {
	path := []scene.Voxel{goal}
	cur := goal
	for {
		prev, ok := cameFrom[cur]
		if !ok {
			break
		}
		path = append(path, prev)
		cur = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// searchRegion is the clipped portion of the lattice a search may
// visit.
type searchRegion struct {
	min scene.Voxel
	max scene.Voxel
}

func (r searchRegion) contains(v scene.Voxel) bool {
	return v.X >= r.min.X && v.X <= r.max.X &&
		v.Y >= r.min.Y && v.Y <= r.max.Y &&
		v.Z >= r.min.Z && v.Z <= r.max.Z
}

func searchRegionFor(occ scene.Occupancy, start, goal scene.Voxel) searchRegion {
	r := searchRegion{min: start, max: start}
	grow := func(v scene.Voxel) {
		r.min.X = minInt(r.min.X, v.X)
		r.min.Y = minInt(r.min.Y, v.Y)
		r.min.Z = minInt(r.min.Z, v.Z)
		r.max.X = maxInt(r.max.X, v.X)
		r.max.Y = maxInt(r.max.Y, v.Y)
		r.max.Z = maxInt(r.max.Z, v.Z)
	}
	grow(goal)
	for v := range occ {
		grow(v)
	}
	r.min = scene.Voxel{X: r.min.X - 1, Y: r.min.Y - 1, Z: r.min.Z - 1}
	r.max = scene.Voxel{X: r.max.X + 1, Y: r.max.Y + 1, Z: r.max.Z + 1}
	return r
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// searchNode is one open-set entry. A voxel can appear more than once;
// stale entries are skipped via the closed set when popped.
type searchNode struct {
	voxel    scene.Voxel
	cost     int
	priority int
	seq      int
	index    int
}

type nodeHeap []*searchNode

func (h nodeHeap) Len() int { return len(h) }

func (h nodeHeap) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority < h[j].priority
	}
	// FIFO among equal priorities keeps expansion order stable.
	return h[i].seq < h[j].seq
}

func (h nodeHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *nodeHeap) Push(x any) {
	n := x.(*searchNode)
	n.index = len(*h)
	*h = append(*h, n)
}

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}
