package framecolor

import (
	"go.skia.org/infra/perf/go/kmeans"

	"videocolors/internal/colortrack"
)

// Dominant finds the most common color by k-means clustering the frame's
// pixels in RGB space. Centroids are seeded from evenly spaced pixels so the
// result is deterministic for a given frame.
type Dominant struct {
	clusters   int
	iterations int
	stride     int
}

// DominantOption configures a Dominant extractor.
type DominantOption func(*Dominant)

// WithClusters sets k. Defaults to 10.
func WithClusters(k int) DominantOption {
	return func(d *Dominant) {
		if k > 0 {
			d.clusters = k
		}
	}
}

// WithIterations sets the number of Lloyd iterations. Defaults to 10.
func WithIterations(n int) DominantOption {
	return func(d *Dominant) {
		if n > 0 {
			d.iterations = n
		}
	}
}

// WithStride clusters every stride-th pixel only. Defaults to 1 (all pixels).
func WithStride(s int) DominantOption {
	return func(d *Dominant) {
		if s > 0 {
			d.stride = s
		}
	}
}

// NewDominant returns a dominant color extractor.
func NewDominant(opts ...DominantOption) *Dominant {
	d := &Dominant{clusters: 10, iterations: 10, stride: 1}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// pixel is one clustered observation.
type pixel [3]float64

// center is a cluster centroid. It is never reported as a cluster member.
type center pixel

func (c center) AsClusterable() kmeans.Clusterable {
	return nil
}

func (c center) Distance(o kmeans.Clusterable) float64 {
	p := o.(pixel)
	dr, dg, db := c[0]-p[0], c[1]-p[1], c[2]-p[2]
	return dr*dr + dg*dg + db*db
}

func meanCenter(members []kmeans.Clusterable) kmeans.Centroid {
	var sum center
	for _, m := range members {
		p := m.(pixel)
		sum[0] += p[0]
		sum[1] += p[1]
		sum[2] += p[2]
	}
	n := float64(len(members))
	return center{sum[0] / n, sum[1] / n, sum[2] / n}
}

func (d *Dominant) Extract(f colortrack.Frame) (colortrack.RGB8, error) {
	n, err := checkFrame(f)
	if err != nil {
		return colortrack.RGB8{}, err
	}

	obs := make([]kmeans.Clusterable, 0, (n+d.stride-1)/d.stride)
	for i := 0; i < n; i += d.stride {
		p := f.Pix[i*3:]
		obs = append(obs, pixel{float64(p[0]), float64(p[1]), float64(p[2])})
	}

	k := min(d.clusters, len(obs))
	seeds := make([]kmeans.Centroid, k)
	for j := range seeds {
		seeds[j] = center(obs[j*len(obs)/k].(pixel))
	}

	// Clusters come back in centroid order; empty clusters are dropped
	// between iterations.
	centroids, groups := kmeans.KMeans(obs, seeds, k, d.iterations, meanCenter)
	best := 0
	for j := 1; j < len(groups); j++ {
		if len(groups[j]) > len(groups[best]) {
			best = j
		}
	}

	c := centroids[best].(center)
	return colortrack.RGB8{R: uint8(c[0]), G: uint8(c[1]), B: uint8(c[2])}, nil
}
