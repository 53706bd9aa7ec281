/*
Package legtracker tracks human legs and paired people from 2-D laser
rangefinder scans.

- legtracker is a golang port of the ROS leg_tracker node's tracking core
- This project is in **no** way associated with the original ROS package

Per scan it filters and clusters raw range returns, associates the
resulting centroids against existing Kalman-filter leg tracks using one
of three pluggable policies, retires and spawns tracks, pairs unpaired
legs into people, reuses identities across short occlusions, and labels
which leg of a pair is left vs. right.

# Basic Usage

	tracker, err := legtracker.NewTracker(legtracker.DefaultConfig())
	if err != nil {
		log.Fatalf("failed to create tracker: %v", err)
	}

	for scan := range scans {
		result, err := tracker.Update(ctx, scan)
		if err != nil {
			log.Printf("scan dropped: %v", err)
			continue
		}
		for _, rec := range result.LegRecords {
			fmt.Printf("leg %d pos=(%.2f,%.2f) conf=%.2f\n", rec.LegID, rec.PosX, rec.PosY, rec.Confidence)
		}
	}

# Core Types

Track represents one leg's Kalman-filter-backed estimate across scans.

Tracker owns all live tracks, retired tracks, bounding-box zones,
short-term identity memory, and dynamic ROI/left-right state; it is
driven exclusively by Update and has no background goroutines.

# Association Policies

Exactly one policy is active at a time, selected by TrackerConfig:
  - PolicyGNN: global nearest-neighbor via Hungarian assignment (default)
  - PolicySinglePerson: dynamic-gate tracking of exactly one person
  - PolicyBoundingBoxZone: persistent zone tracking plus GNN for the rest

# Filtering

  - Passthrough to a static or dynamic region of interest
  - Radius outlier removal
  - Optional occupancy-grid free-space masking
*/
package legtracker
