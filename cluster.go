package legtracker

// Cluster is one candidate leg blob: its raw member points, centroid, and
// inflated bounding box, all in the tracking frame.
type Cluster struct {
	Points   []Point
	Centroid Point
	Box      BBox
}

// euclideanCluster groups points into clusters via single-link distance
// tolerance (the same aggregation rule as PCL's EuclideanClusterExtraction),
// keeping only clusters whose size falls within [minSize, maxSize].
func euclideanCluster(points []Point, tolerance float64, minSize, maxSize int) [][]Point {
	n := len(points)
	visited := make([]bool, n)
	tol2 := tolerance * tolerance

	var clusters [][]Point
	for i := 0; i < n; i++ {
		if visited[i] {
			continue
		}
		// BFS over the tolerance-radius adjacency graph.
		queue := []int{i}
		visited[i] = true
		var members []int
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			members = append(members, cur)
			for j := 0; j < n; j++ {
				if visited[j] {
					continue
				}
				if sqDist(points[cur], points[j]) <= tol2 {
					visited[j] = true
					queue = append(queue, j)
				}
			}
		}
		if len(members) < minSize || len(members) > maxSize {
			continue
		}
		pts := make([]Point, len(members))
		for k, idx := range members {
			pts[k] = points[idx]
		}
		clusters = append(clusters, pts)
	}
	return clusters
}

func centroidOf(pts []Point) Point {
	var sx, sy float64
	for _, p := range pts {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(pts))
	return Point{sx / n, sy / n}
}

// snapCentroid replaces centroid with the position of any live,
// currently-paired track lying within 3cm of it, preventing micro-jitter
// from breaking the association step downstream.
func snapCentroid(centroid Point, tracks []*Track) Point {
	const snapRadius = 0.03
	for _, tr := range tracks {
		if tr.PeopleID < 0 {
			continue
		}
		if dist(tr.Position(), centroid) < snapRadius {
			return tr.Position()
		}
	}
	return centroid
}

// splitBlob partitions a cluster's raw points by the sign of the cross
// product p.x*c.y - c.x*p.y (c = cluster centroid) into two halves, used
// when two known paired-leg positions both fall inside one cluster's
// inflated bounding box. Returns ok=false (caller should keep the single
// original centroid) unless both halves meet minSize and the half
// centroids are farther apart than legRadius.
func splitBlob(pts []Point, centroid Point, minSize int, legRadius float64) (a, b Point, ok bool) {
	var left, right []Point
	for _, p := range pts {
		cross := p.X*centroid.Y - centroid.X*p.Y
		if cross >= 0 {
			right = append(right, p)
		} else {
			left = append(left, p)
		}
	}
	if len(left) < minSize || len(right) < minSize {
		return Point{}, Point{}, false
	}
	cl, cr := centroidOf(left), centroidOf(right)
	if dist(cl, cr) <= legRadius {
		return Point{}, Point{}, false
	}
	return cl, cr, true
}

// buildClusters runs clustering, centroid-snapping, and blob-splitting,
// returning one Cluster per emitted centroid (a split cluster emits two
// Clusters sharing the same raw points and bounding box).
func buildClusters(points []Point, cfg *TrackerConfig, liveTracks []*Track, pairedPositions [][2]Point) []Cluster {
	raw := euclideanCluster(points, cfg.ClusterTolerance, cfg.MinClusterSize, cfg.MaxClusterSize)

	var out []Cluster
	for _, pts := range raw {
		centroid := centroidOf(pts)
		box := bboxFromPoints(pts).inflate(cfg.ClusterBoundingBoxUncert)

		if pair, ok := findEnclosingPair(box, pairedPositions); ok {
			if a, b, split := splitBlob(pts, centroid, cfg.MinClusterSize, cfg.LegRadius); split {
				_ = pair
				out = append(out,
					Cluster{Points: pts, Centroid: snapCentroid(a, liveTracks), Box: box},
					Cluster{Points: pts, Centroid: snapCentroid(b, liveTracks), Box: box},
				)
				continue
			}
		}

		out = append(out, Cluster{Points: pts, Centroid: snapCentroid(centroid, liveTracks), Box: box})
	}
	return out
}

// findEnclosingPair reports whether both positions of some known paired
// leg lie inside box.
func findEnclosingPair(box BBox, pairedPositions [][2]Point) ([2]Point, bool) {
	for _, pair := range pairedPositions {
		if box.contains(pair[0]) && box.contains(pair[1]) {
			return pair, true
		}
	}
	return [2]Point{}, false
}
