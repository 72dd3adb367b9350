package mesh

import (
	"errors"

	"github.com/fogleman/delaunay"

	"github.com/mastercactapus/meshmotion/coord"
)

// FromProbes builds a grid by triangulating scattered probe results
// and sampling the surface at every grid point. Grid points outside
// the probed region are left undefined.
func FromProbes(cfg GridConfig, points []coord.Point) (*Grid, error) {
	if len(points) < 3 {
		return nil, errors.New("need at least 3 points to build a mesh")
	}

	g, err := NewGrid(cfg)
	if err != nil {
		return nil, err
	}

	points2d := make([]delaunay.Point, len(points))
	m := make(map[delaunay.Point]coord.Point, len(points))

	var d delaunay.Point
	for i, p := range points {
		d.X = p.X
		d.Y = p.Y
		m[d] = p
		points2d[i] = d
	}

	tri, err := delaunay.Triangulate(points2d)
	if err != nil {
		return nil, err
	}

	triangles := make([]coord.Triangle, 0, len(tri.Triangles)/3)
	for i := 0; i < len(tri.Triangles); i += 3 {
		triangles = append(triangles, coord.Triangle{
			A: m[tri.Points[tri.Triangles[i]]],
			B: m[tri.Points[tri.Triangles[i+1]]],
			C: m[tri.Points[tri.Triangles[i+2]]],
		})
	}

	for ix := 0; ix < cfg.PointsX; ix++ {
		for iy := 0; iy < cfg.PointsY; iy++ {
			x, y := g.PointX(ix), g.PointY(iy)
			for _, t := range triangles {
				if !t.ContainsXY(x, y) {
					continue
				}
				g.SetZ(ix, iy, t.Z(x, y))
				break
			}
		}
	}

	return g, nil
}
