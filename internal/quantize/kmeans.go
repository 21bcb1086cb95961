package quantize

import (
	"fmt"
	"image"
	"math"
	"math/rand"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/ferret/internal/security"
)

// KMeans quantizes with k-means++ clustering in RGB space. The random source
// is seeded from the image content, so identical pixels always give an
// identical histogram.
type KMeans struct {
	maxIterations int
	convergence   float64
	maxSamples    int
	logger        hclog.Logger
}

// NewKMeans creates a KMeans quantizer with default settings.
func NewKMeans() *KMeans {
	return &KMeans{
		maxIterations: 20,
		convergence:   1.0,
		maxSamples:    10000,
		logger:        hclog.NewNullLogger(),
	}
}

// WithLogger sets the logger used for clustering diagnostics.
func (q *KMeans) WithLogger(logger hclog.Logger) *KMeans {
	if logger != nil {
		q.logger = logger.Named("quantize")
	}
	return q
}

// WithMaxSamples caps how many pixels are clustered; larger images are grid
// sampled down to roughly this many.
func (q *KMeans) WithMaxSamples(n int) *KMeans {
	if n > 0 {
		q.maxSamples = n
	}
	return q
}

// Quantize implements Quantizer. Fully transparent pixels are ignored. When
// the sampled pixels hold no more than maxColors distinct colours their exact
// counts are returned without clustering.
func (q *KMeans) Quantize(img image.Image, maxColors int) (map[uint32]int, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if maxColors < 1 {
		return nil, fmt.Errorf("color count must be at least 1, got %d", maxColors)
	}

	pixels := q.samplePixels(img)
	if len(pixels) == 0 {
		return nil, fmt.Errorf("no opaque pixels found in image")
	}

	counts := make(map[uint32]int)
	for _, p := range pixels {
		counts[p.pack()]++
	}
	if len(counts) <= maxColors {
		q.logger.Debug("image has few unique colours, skipping clustering", "unique", len(counts))
		return counts, nil
	}

	seed, err := ContentSeed(img)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate content seed: %w", err)
	}
	rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- deterministic clustering, not security sensitive

	centroids, sizes := q.kmeans(rng, pixels, maxColors)

	result := make(map[uint32]int, len(centroids))
	for i, c := range centroids {
		if sizes[i] == 0 {
			continue
		}
		result[c.pack()] += sizes[i]
	}
	q.logger.Debug("clustered image", "samples", len(pixels), "unique", len(counts), "clusters", len(result))
	return result, nil
}

// point3D represents a point in 3D RGB colour space.
type point3D struct {
	R, G, B float64
}

func (p point3D) distanceSq(other point3D) float64 {
	dr := p.R - other.R
	dg := p.G - other.G
	db := p.B - other.B
	return dr*dr + dg*dg + db*db
}

func (p point3D) pack() uint32 {
	return packRGB(clampChannel(p.R), clampChannel(p.G), clampChannel(p.B))
}

func clampChannel(v float64) uint8 {
	return security.SafeUint8(int(math.Round(v)))
}

// samplePixels collects opaque pixels, grid sampling large images.
func (q *KMeans) samplePixels(img image.Image) []point3D {
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()

	step := 1
	if total > q.maxSamples {
		step = max(int(math.Sqrt(float64(total)/float64(q.maxSamples))), 1)
	}

	pixels := make([]point3D, 0, min(total, q.maxSamples))
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			r, g, b, a := img.At(x, y).RGBA()
			if a>>8 < 255 {
				continue
			}
			pixels = append(pixels, point3D{
				R: float64(r >> 8),
				G: float64(g >> 8),
				B: float64(b >> 8),
			})
		}
	}
	return pixels
}

// kmeans clusters points into k groups and returns centroids with their
// member counts.
func (q *KMeans) kmeans(rng *rand.Rand, points []point3D, k int) ([]point3D, []int) {
	centroids := initCentroids(rng, points, k)
	assignments := make([]int, len(points))

	for iter := 0; iter < q.maxIterations; iter++ {
		changed := 0
		for i, point := range points {
			nearest := nearestCentroid(point, centroids)
			if assignments[i] != nearest {
				assignments[i] = nearest
				changed++
			}
		}
		if iter > 0 && float64(changed)/float64(len(points)) < 0.01 {
			break
		}

		next := recalculateCentroids(rng, points, assignments, centroids)
		movement := 0.0
		for i := range centroids {
			movement += math.Sqrt(centroids[i].distanceSq(next[i]))
		}
		centroids = next

		if movement/float64(len(centroids)) < q.convergence {
			break
		}
	}

	// Final assignment against the settled centroids.
	sizes := make([]int, len(centroids))
	for _, point := range points {
		sizes[nearestCentroid(point, centroids)]++
	}
	return centroids, sizes
}

// initCentroids picks starting centroids with k-means++: each new centroid
// is drawn with probability proportional to its squared distance from the
// nearest existing one.
func initCentroids(rng *rand.Rand, points []point3D, k int) []point3D {
	centroids := make([]point3D, 0, k)
	centroids = append(centroids, points[rng.Intn(len(points))])

	distances := make([]float64, len(points))
	for len(centroids) < k {
		total := 0.0
		for i, point := range points {
			best := math.MaxFloat64
			for _, c := range centroids {
				best = math.Min(best, point.distanceSq(c))
			}
			distances[i] = best
			total += best
		}

		// Every point already sits on a centroid.
		if total == 0 {
			break
		}

		target := rng.Float64() * total
		cumulative := 0.0
		chosen := len(points) - 1
		for i, d := range distances {
			cumulative += d
			if cumulative >= target {
				chosen = i
				break
			}
		}
		centroids = append(centroids, points[chosen])
	}

	return centroids
}

func nearestCentroid(point point3D, centroids []point3D) int {
	minDist := math.MaxFloat64
	nearest := 0
	for i, c := range centroids {
		if d := point.distanceSq(c); d < minDist {
			minDist = d
			nearest = i
		}
	}
	return nearest
}

// recalculateCentroids moves each centroid to the mean of its members. An
// empty cluster is reseeded from a random point.
func recalculateCentroids(rng *rand.Rand, points []point3D, assignments []int, current []point3D) []point3D {
	sums := make([]point3D, len(current))
	counts := make([]int, len(current))
	for i, point := range points {
		cluster := assignments[i]
		sums[cluster].R += point.R
		sums[cluster].G += point.G
		sums[cluster].B += point.B
		counts[cluster]++
	}

	next := make([]point3D, len(current))
	for i := range current {
		if counts[i] == 0 {
			next[i] = points[rng.Intn(len(points))]
			continue
		}
		n := float64(counts[i])
		next[i] = point3D{R: sums[i].R / n, G: sums[i].G / n, B: sums[i].B / n}
	}
	return next
}
