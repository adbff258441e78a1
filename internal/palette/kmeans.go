// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package palette

import (
	"math"
	"math/rand/v2"
	"sort"
)

const (
	seed       = 42
	restarts   = 10
	iterations = 50
	// maxSamples bounds the points the clustering is fitted on. Every point
	// is still counted against the final centers.
	maxSamples = 5000
)

type point [3]float64

type cluster struct {
	center point
	count  int
}

func dist2(a, b point) float64 {
	dr, dg, db := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return dr*dr + dg*dg + db*db
}

// kmeans clusters points into k groups and returns them largest first. The
// result is deterministic for a given input.
func kmeans(points []point, k int) []cluster {
	if k <= 0 || len(points) == 0 {
		return nil
	}
	rng := rand.New(rand.NewPCG(seed, seed)) //nolint:gosec

	sample := points
	if len(points) > maxSamples {
		sample = make([]point, maxSamples)
		for i := range sample {
			sample[i] = points[rng.IntN(len(points))]
		}
	}
	k = min(k, len(sample))

	var best []point
	bestInertia := math.Inf(1)
	for range restarts {
		centers := fit(sample, initCenters(sample, k, rng))
		if inertia := inertia(sample, centers); inertia < bestInertia {
			best, bestInertia = centers, inertia
		}
	}

	clusters := make([]cluster, len(best))
	for i, c := range best {
		clusters[i].center = c
	}
	for _, p := range points {
		clusters[nearest(p, best)].count++
	}
	sort.SliceStable(clusters, func(i, j int) bool { return clusters[i].count > clusters[j].count })
	return clusters
}

// initCenters is k-means++ seeding.
func initCenters(points []point, k int, rng *rand.Rand) []point {
	centers := make([]point, 0, k)
	centers = append(centers, points[rng.IntN(len(points))])

	d := make([]float64, len(points))
	for len(centers) < k {
		total := 0.0
		for i, p := range points {
			d[i] = dist2(p, centers[nearest(p, centers)])
			total += d[i]
		}
		if total == 0 {
			centers = append(centers, points[rng.IntN(len(points))])
			continue
		}
		target := rng.Float64() * total
		chosen := len(points) - 1
		for i, w := range d {
			target -= w
			if target <= 0 {
				chosen = i
				break
			}
		}
		centers = append(centers, points[chosen])
	}
	return centers
}

// fit runs Lloyd iterations until assignments stop changing.
func fit(points []point, centers []point) []point {
	labels := make([]int, len(points))
	for i := range labels {
		labels[i] = -1
	}

	for range iterations {
		changed := false
		for i, p := range points {
			if n := nearest(p, centers); n != labels[i] {
				labels[i] = n
				changed = true
			}
		}
		if !changed {
			break
		}

		sums := make([]point, len(centers))
		counts := make([]int, len(centers))
		for i, p := range points {
			l := labels[i]
			sums[l][0] += p[0]
			sums[l][1] += p[1]
			sums[l][2] += p[2]
			counts[l]++
		}
		for c := range centers {
			// An empty cluster keeps its previous center.
			if counts[c] == 0 {
				continue
			}
			n := float64(counts[c])
			centers[c] = point{sums[c][0] / n, sums[c][1] / n, sums[c][2] / n}
		}
	}
	return centers
}

func nearest(p point, centers []point) int {
	best, bestD := 0, math.Inf(1)
	for i, c := range centers {
		if d := dist2(p, c); d < bestD {
			best, bestD = i, d
		}
	}
	return best
}

func inertia(points []point, centers []point) float64 {
	total := 0.0
	for _, p := range points {
		total += dist2(p, centers[nearest(p, centers)])
	}
	return total
}
