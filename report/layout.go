package report

import (
	"math"
	"math/rand"

	"github.com/hansblade/CMAC03-Auxilio-Estudantil/similarity"
)

// layoutIterations is enough for the cohort sizes this pipeline targets.
const layoutIterations = 200

// Point is a node position in the unit layout square.
type Point struct {
	X, Y float64
}

// fruchtermanReingold computes a force-directed layout for the similarity
// graph. The generator is seeded explicitly, so a fixed seed reproduces the
// same picture run after run.
func fruchtermanReingold(g *similarity.Graph, seed int64) []Point {
	n := g.N
	pos := make([]Point, n)
	if n == 0 {
		return pos
	}

	rng := rand.New(rand.NewSource(seed))
	for i := range pos {
		pos[i] = Point{X: rng.Float64(), Y: rng.Float64()}
	}
	if n == 1 {
		return pos
	}

	// Ideal pairwise distance for a unit-area canvas
	k := math.Sqrt(1.0 / float64(n))
	temperature := 0.1

	disp := make([]Point, n)
	for iter := 0; iter < layoutIterations; iter++ {
		for i := range disp {
			disp[i] = Point{}
		}

		// Repulsion between all pairs
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				dx := pos[i].X - pos[j].X
				dy := pos[i].Y - pos[j].Y
				dist := math.Hypot(dx, dy)
				if dist < 1e-9 {
					// Coincident nodes: nudge deterministically
					dx, dy, dist = 1e-4, 1e-4, math.Sqrt2*1e-4
				}
				force := k * k / dist
				disp[i].X += dx / dist * force
				disp[i].Y += dy / dist * force
				disp[j].X -= dx / dist * force
				disp[j].Y -= dy / dist * force
			}
		}

		// Attraction along edges, scaled by similarity weight
		for _, e := range g.Edges {
			dx := pos[e.I].X - pos[e.J].X
			dy := pos[e.I].Y - pos[e.J].Y
			dist := math.Hypot(dx, dy)
			if dist < 1e-9 {
				continue
			}
			force := dist * dist / k * e.Weight
			disp[e.I].X -= dx / dist * force
			disp[e.I].Y -= dy / dist * force
			disp[e.J].X += dx / dist * force
			disp[e.J].Y += dy / dist * force
		}

		// Bounded displacement with cooling
		for i := 0; i < n; i++ {
			dist := math.Hypot(disp[i].X, disp[i].Y)
			if dist < 1e-9 {
				continue
			}
			step := math.Min(dist, temperature)
			pos[i].X += disp[i].X / dist * step
			pos[i].Y += disp[i].Y / dist * step
			pos[i].X = math.Min(1, math.Max(0, pos[i].X))
			pos[i].Y = math.Min(1, math.Max(0, pos[i].Y))
		}
		temperature *= 0.98
	}

	return pos
}
