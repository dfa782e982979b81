package occupancy

// Components labels every contiguous region ("island") of walkable cells
// under 4-connectivity. labels is row-major with one entry per cell: the
// island index for walkable cells, -1 for blocked ones. Islands are numbered
// in row-major order of their first cell.
//
// The labeling is computed once per grid and cached; the returned slice is a
// copy. Time: O(W·H). Memory: O(W·H).
func (g *Grid) Components() (labels []int, islands int) {
	g.compOnce.Do(g.label)
	out := make([]int, len(g.labels))
	copy(out, g.labels)
	return out, g.islands
}

// Connected reports whether a and b are walkable cells of the same island.
// It answers in O(1) after the first call.
func (g *Grid) Connected(a, b Cell) bool {
	if !g.Walkable(a) || !g.Walkable(b) {
		return false
	}
	g.compOnce.Do(g.label)
	return g.labels[g.index(a)] == g.labels[g.index(b)]
}

// label runs one BFS per unlabeled walkable cell.
func (g *Grid) label() {
	total := g.width * g.height
	labels := make([]int, total)
	for i := range labels {
		labels[i] = -1
	}
	next := 0
	queue := make([]int, 0, total)

	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			i0 := g.index(Cell{X: x, Y: y})
			if !g.cells[y][x] || labels[i0] >= 0 {
				continue
			}
			// BFS to collect the island
			queue = append(queue[:0], i0)
			labels[i0] = next
			for qi := 0; qi < len(queue); qi++ {
				u := g.Coordinate(queue[qi])
				for _, d := range Conn4 {
					v := u.Add(d)
					if !g.Walkable(v) {
						continue
					}
					vi := g.index(v)
					if labels[vi] < 0 {
						labels[vi] = next
						queue = append(queue, vi)
					}
				}
			}
			next++
		}
	}
	g.labels = labels
	g.islands = next
}
