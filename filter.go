package legtracker

// passthroughROI keeps only points lying within roi (inclusive), an
// axis-aligned crop applied first so later stages operate on a bounded
// working set.
func passthroughROI(points []Point, roi BBox) []Point {
	out := make([]Point, 0, len(points))
	for _, p := range points {
		if roi.contains(p) {
			out = append(out, p)
		}
	}
	return out
}

// removeRadiusOutliers keeps only points with at least minNeighbors other
// points within radius, discarding isolated returns (sensor noise,
// reflections) before clustering ever sees them.
func removeRadiusOutliers(points []Point, radius float64, minNeighbors int) []Point {
	r2 := radius * radius
	out := make([]Point, 0, len(points))
	for i, p := range points {
		count := 0
		for j, q := range points {
			if i == j {
				continue
			}
			if sqDist(p, q) <= r2 {
				count++
				if count >= minNeighbors {
					break
				}
			}
		}
		if count >= minNeighbors {
			out = append(out, p)
		}
	}
	return out
}

// maskByOccupancy keeps only points whose (2k+1)^2 neighborhood average
// occupancy, divided by 100, is <= threshold: i.e. points that lie in
// known free space, not on or behind an obstacle the map already knows
// about.
func maskByOccupancy(points []Point, grid *OccupancyGrid, toMapFrame func(Point) Point, k int, threshold float64) []Point {
	if grid == nil {
		return points
	}
	out := make([]Point, 0, len(points))
	for _, p := range points {
		mp := p
		if toMapFrame != nil {
			mp = toMapFrame(p)
		}
		ci, cj := grid.WorldToGrid(mp)

		sum, count := 0.0, 0
		for di := -k; di <= k; di++ {
			for dj := -k; dj <= k; dj++ {
				i, j := ci+di, cj+dj
				if i < 0 || j < 0 || i >= grid.Width || j >= grid.Height {
					continue
				}
				v := grid.At(i, j)
				if v < 0 {
					continue // unknown cells don't contribute to the average
				}
				sum += float64(v)
				count++
			}
		}
		if count == 0 {
			continue
		}
		ratio := (sum / float64(count)) / 100.0
		if ratio <= threshold {
			out = append(out, p)
		}
	}
	return out
}

const occupancyMaskWindowRadius = 1 // (2*1+1)^2 = 3x3 window

// filterScan runs the full spatial filter pipeline in order: ROI
// passthrough, radius outlier removal, optional occupancy mask. Returns
// errSkipScan if fewer than MinClusterSize points survive any stage.
func (t *Tracker) filterScan(points []Point, roi BBox, grid *OccupancyGrid, toMapFrame func(Point) Point) ([]Point, error) {
	cfg := t.cfg

	pts := passthroughROI(points, roi)
	if len(pts) < cfg.MinClusterSize {
		return nil, errSkipScan
	}

	pts = removeRadiusOutliers(pts, cfg.OutlierRemovalRadius, cfg.MaxNeighborsForOutlierRem)
	if len(pts) < cfg.MinClusterSize {
		return nil, errSkipScan
	}

	if cfg.WithMap && grid != nil {
		pts = maskByOccupancy(pts, grid, toMapFrame, occupancyMaskWindowRadius, cfg.InFreeSpaceThreshold)
		if len(pts) < cfg.MinClusterSize {
			return nil, errSkipScan
		}
	}

	return pts, nil
}
