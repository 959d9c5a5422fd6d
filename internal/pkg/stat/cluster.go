package stat

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

const maxIterations = 100

// Cluster groups points into k clusters with the k-means algorithm, and returns the cluster index of each point.
//
// The initial centroids are chosen deterministically: the first point, then repeatedly the point farthest
// from the centroids already chosen.
func Cluster(points [][]float64, k int) ([]int, error) {
	if k < 2 {
		return nil, fmt.Errorf("%d clusters: %w", k, ErrOutOfDomain)
	}

	if len(points) < k {
		return nil, fmt.Errorf("%d points for %d clusters: %w", len(points), k, ErrNotEnoughPoints)
	}

	centroids := initialCentroids(points, k)
	assignments := make([]int, len(points))

	for range maxIterations {
		changed := false
		for i, p := range points {
			nearest := nearestCentroid(p, centroids)
			if nearest != assignments[i] {
				assignments[i] = nearest
				changed = true
			}
		}

		updateCentroids(points, assignments, centroids)

		if !changed {
			break
		}
	}

	return assignments, nil
}

func initialCentroids(points [][]float64, k int) [][]float64 {
	centroids := make([][]float64, 0, k)
	centroids = append(centroids, clone(points[0]))

	for len(centroids) < k {
		farthest, best := 0, -1.0
		for i, p := range points {
			d := floats.Distance(p, centroids[nearestCentroid(p, centroids)], 2)
			if d > best {
				farthest, best = i, d
			}
		}

		centroids = append(centroids, clone(points[farthest]))
	}

	return centroids
}

func nearestCentroid(p []float64, centroids [][]float64) int {
	nearest, best := 0, -1.0
	for j, c := range centroids {
		d := floats.Distance(p, c, 2)
		if best < 0 || d < best {
			nearest, best = j, d
		}
	}

	return nearest
}

func updateCentroids(points [][]float64, assignments []int, centroids [][]float64) {
	counts := make([]int, len(centroids))
	sums := make([][]float64, len(centroids))
	for j := range sums {
		sums[j] = make([]float64, len(centroids[j]))
	}

	for i, p := range points {
		j := assignments[i]
		floats.Add(sums[j], p)
		counts[j]++
	}

	for j, sum := range sums {
		if counts[j] == 0 {
			// an empty cluster keeps its centroid
			continue
		}

		floats.Scale(1/float64(counts[j]), sum)
		centroids[j] = sum
	}
}

func clone(p []float64) []float64 {
	return append([]float64(nil), p...)
}
