package mesh

// cubeFaces lists the twelve triangles of the cube built by NewCube, two per face.
var cubeFaces = [12][3]int{
	{0, 1, 2}, {0, 2, 3}, // front
	{1, 6, 2}, {6, 5, 2}, // right
	{7, 5, 6}, {7, 4, 5}, // back
	{0, 3, 7}, {3, 4, 7}, // left
	{0, 6, 1}, {0, 7, 6}, // bottom
	{3, 2, 5}, {3, 5, 4}, // top
}

// NewCube returns a closed cube mesh with the given side length: 8 vertices,
// 12 triangles and 18 edges (12 sides plus one diagonal per face). The first
// corner sits at (10, 7, 5), the remaining corners walk around it.
func NewCube(side float64, opts ...Option) (*Mesh, error) {
	m := New(append([]Option{WithCapacity(8, 12)}, opts...)...)

	corner := [3]float64{10, 7, 5}
	var delta [3]float64
	for v := 0; v < 8; v++ {
		switch v {
		case 1:
			delta[0] += side
		case 2:
			delta[1] += side
		case 3:
			delta[0] -= side
		case 4:
			delta[2] -= side
		case 5:
			delta[0] += side
		case 6:
			delta[1] -= side
		case 7:
			delta[0] -= side
		}
		if _, err := m.AddVertex(corner[0]+delta[0], corner[1]+delta[1], corner[2]+delta[2]); err != nil {
			return nil, err
		}
	}

	for _, f := range cubeFaces {
		if _, err := m.AddTriangle(f[0], f[1], f[2]); err != nil {
			return nil, err
		}
	}

	return m, nil
}
