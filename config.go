package legtracker

import (
	"fmt"

	"github.com/rs/zerolog"
)

// AssociationPolicy selects exactly one of the three track-to-measurement
// matchers run per scan. Expressed as a sum type dispatched once per scan
// rather than per-measurement polymorphism, since the three matchers share
// no state and differ only by precondition.
type AssociationPolicy int

const (
	// PolicyGNN is global nearest-neighbor via Hungarian assignment.
	PolicyGNN AssociationPolicy = iota
	// PolicySinglePerson tracks exactly one person with a dynamic ROI.
	PolicySinglePerson
	// PolicyBoundingBoxZone runs persistent zone tracking first, then GNN
	// for tracks with no people_id.
	PolicyBoundingBoxZone
)

// TrackerConfig holds every named option from the external interface
// surface. Zero-valued fields are filled in by NewTracker with the
// defaults documented below; pass DefaultConfig() and override only what
// you need.
type TrackerConfig struct {
	// ScanTopic names the inbound transport topic (ambient glue only;
	// unused by the tracking core itself). Default: "scan".
	ScanTopic string
	// GlobalMapTopic names the occupancy-grid topic. Default: "map".
	GlobalMapTopic string
	// TransformLink names the tracking frame. Default: "odom".
	TransformLink string

	// Frequency is the scan period in seconds, used for state transition
	// dt and for aging short-term memory. Default: 0.05 (20 Hz).
	Frequency float64

	// Static region of interest, in the tracking frame.
	XLowerLimit float64
	XUpperLimit float64
	YLowerLimit float64
	YUpperLimit float64

	// LegRadius is the minimum plausible inter-leg distance and the
	// blob-split half-centroid separation threshold. Default: 0.1.
	LegRadius float64
	// MinObservations is the confirmation threshold and history length.
	// Default: 4.
	MinObservations int
	// MaxDistBtwLegs bounds the pairing distance. Default: 0.8.
	MaxDistBtwLegs float64
	// ZCoordinate is the fixed emission height. Default: 0.2.
	ZCoordinate float64
	// StateDimensions is the Kalman state size (2 * (pos,vel,acc) per
	// axis). Default: 6.
	StateDimensions int

	MinClusterSize             int
	MaxClusterSize             int
	ClusterTolerance           float64
	OccludedDeadAge            int
	VarianceObservation        float64
	MinDistTravelled           float64
	MaxCov                     float64
	InFreeSpaceThreshold       float64
	MahalanobisDistGate        float64
	EuclidianDistGate          float64
	MaxCost                    float64
	ClusterBoundingBoxUncert   float64
	TrackingBoundingBoxUncert  float64
	OutlierRemovalRadius       float64
	MaxNeighborsForOutlierRem  int
	RefPointX                  float64
	RefPointY                  float64

	// Association policy and mode flags.
	Policy           AssociationPolicy
	IsOnePersonToTrack   bool
	IsBoundingBoxTracking bool
	WithMap              bool

	// External collaborators (§6), all optional. Transform defaults to
	// an identity lookup, OccGrid/Markers default to no-ops, Logger
	// defaults to a disabled logger so library use outside a configured
	// host stays silent.
	Transform TransformProvider
	OccGrid   OccupancyGridProvider
	Markers   MarkerSink
	Logger    *zerolog.Logger
}

// DefaultConfig returns a TrackerConfig populated with the same defaults
// the ROS node shipped, sized for an indoor mobile-robot deployment.
func DefaultConfig() *TrackerConfig {
	return &TrackerConfig{
		ScanTopic:                 "scan",
		GlobalMapTopic:            "map",
		TransformLink:             "odom",
		Frequency:                 0.05,
		XLowerLimit:               -1.0,
		XUpperLimit:               1.0,
		YLowerLimit:               -1.0,
		YUpperLimit:               1.0,
		LegRadius:                 0.1,
		MinObservations:           4,
		MaxDistBtwLegs:            0.8,
		ZCoordinate:               0.2,
		StateDimensions:           6,
		MinClusterSize:            3,
		MaxClusterSize:            150,
		ClusterTolerance:          0.06,
		OccludedDeadAge:           10,
		VarianceObservation:       0.0004,
		MinDistTravelled:          0.1,
		MaxCov:                    0.81,
		InFreeSpaceThreshold:      0.5,
		MahalanobisDistGate:       1.2,
		EuclidianDistGate:         0.45,
		MaxCost:                   999999.0,
		ClusterBoundingBoxUncert:  0.03,
		TrackingBoundingBoxUncert: 0.1,
		OutlierRemovalRadius:      0.1,
		MaxNeighborsForOutlierRem: 3,
		RefPointX:                 0.0,
		RefPointY:                 0.0,
		Policy:                    PolicyGNN,
		IsOnePersonToTrack:        false,
		IsBoundingBoxTracking:     false,
		WithMap:                   false,
	}
}

// applyDefaults fills zero-valued numeric fields from DefaultConfig. It
// mutates cfg in place, mirroring the teacher's NewTracker default-filling
// idiom (fields are only defaulted when left at their Go zero value, so an
// explicit zero cannot be requested for fields where zero is meaningless).
func (cfg *TrackerConfig) applyDefaults() {
	d := DefaultConfig()
	if cfg.ScanTopic == "" {
		cfg.ScanTopic = d.ScanTopic
	}
	if cfg.GlobalMapTopic == "" {
		cfg.GlobalMapTopic = d.GlobalMapTopic
	}
	if cfg.TransformLink == "" {
		cfg.TransformLink = d.TransformLink
	}
	if cfg.Frequency == 0 {
		cfg.Frequency = d.Frequency
	}
	if cfg.XLowerLimit == 0 && cfg.XUpperLimit == 0 {
		cfg.XLowerLimit, cfg.XUpperLimit = d.XLowerLimit, d.XUpperLimit
	}
	if cfg.YLowerLimit == 0 && cfg.YUpperLimit == 0 {
		cfg.YLowerLimit, cfg.YUpperLimit = d.YLowerLimit, d.YUpperLimit
	}
	if cfg.LegRadius == 0 {
		cfg.LegRadius = d.LegRadius
	}
	if cfg.MinObservations == 0 {
		cfg.MinObservations = d.MinObservations
	}
	if cfg.MaxDistBtwLegs == 0 {
		cfg.MaxDistBtwLegs = d.MaxDistBtwLegs
	}
	if cfg.ZCoordinate == 0 {
		cfg.ZCoordinate = d.ZCoordinate
	}
	if cfg.StateDimensions == 0 {
		cfg.StateDimensions = d.StateDimensions
	}
	if cfg.MinClusterSize == 0 {
		cfg.MinClusterSize = d.MinClusterSize
	}
	if cfg.MaxClusterSize == 0 {
		cfg.MaxClusterSize = d.MaxClusterSize
	}
	if cfg.ClusterTolerance == 0 {
		cfg.ClusterTolerance = d.ClusterTolerance
	}
	if cfg.OccludedDeadAge == 0 {
		cfg.OccludedDeadAge = d.OccludedDeadAge
	}
	if cfg.VarianceObservation == 0 {
		cfg.VarianceObservation = d.VarianceObservation
	}
	if cfg.MinDistTravelled == 0 {
		cfg.MinDistTravelled = d.MinDistTravelled
	}
	if cfg.MaxCov == 0 {
		cfg.MaxCov = d.MaxCov
	}
	if cfg.InFreeSpaceThreshold == 0 {
		cfg.InFreeSpaceThreshold = d.InFreeSpaceThreshold
	}
	if cfg.MahalanobisDistGate == 0 {
		cfg.MahalanobisDistGate = d.MahalanobisDistGate
	}
	if cfg.EuclidianDistGate == 0 {
		cfg.EuclidianDistGate = d.EuclidianDistGate
	}
	if cfg.MaxCost == 0 {
		cfg.MaxCost = d.MaxCost
	}
	if cfg.ClusterBoundingBoxUncert == 0 {
		cfg.ClusterBoundingBoxUncert = d.ClusterBoundingBoxUncert
	}
	if cfg.TrackingBoundingBoxUncert == 0 {
		cfg.TrackingBoundingBoxUncert = d.TrackingBoundingBoxUncert
	}
	if cfg.OutlierRemovalRadius == 0 {
		cfg.OutlierRemovalRadius = d.OutlierRemovalRadius
	}
	if cfg.MaxNeighborsForOutlierRem == 0 {
		cfg.MaxNeighborsForOutlierRem = d.MaxNeighborsForOutlierRem
	}
	if cfg.Transform == nil {
		cfg.Transform = identityTransformProvider{}
	}
	if cfg.Markers == nil {
		cfg.Markers = noopMarkerSink{}
	}
	if cfg.Logger == nil {
		nop := zerolog.Nop()
		cfg.Logger = &nop
	}
	cfg.resolveAssociationPolicy()
}

// resolveAssociationPolicy reconciles the spec-named mode flags
// (IsOnePersonToTrack, IsBoundingBoxTracking) with the internal Policy
// enum association.go's dispatch actually reads, so a caller that sets
// only one of the two surfaces still gets consistent behavior. The
// flags take precedence when set; otherwise an explicitly chosen Policy
// is reflected back onto the flag a caller might inspect.
func (cfg *TrackerConfig) resolveAssociationPolicy() {
	switch {
	case cfg.IsOnePersonToTrack:
		cfg.Policy = PolicySinglePerson
	case cfg.IsBoundingBoxTracking:
		cfg.Policy = PolicyBoundingBoxZone
	case cfg.Policy == PolicySinglePerson:
		cfg.IsOnePersonToTrack = true
	case cfg.Policy == PolicyBoundingBoxZone:
		cfg.IsBoundingBoxTracking = true
	}
}

// validate rejects the misconfigurations the specification names as
// fatal: negative thresholds, zero cluster size, inconsistent state
// dimension. Called once by NewTracker; never invoked per-scan.
func (cfg *TrackerConfig) validate() error {
	switch {
	case cfg.IsOnePersonToTrack && cfg.IsBoundingBoxTracking:
		return &ConfigError{Field: "IsOnePersonToTrack", Reason: "mutually exclusive with IsBoundingBoxTracking"}
	case cfg.MinClusterSize <= 0:
		return &ConfigError{Field: "MinClusterSize", Reason: "must be > 0"}
	case cfg.MaxClusterSize < cfg.MinClusterSize:
		return &ConfigError{Field: "MaxClusterSize", Reason: "must be >= MinClusterSize"}
	case cfg.StateDimensions != 6:
		return &ConfigError{Field: "StateDimensions", Reason: "constant-acceleration model requires 6 (pos,vel,acc x/y)"}
	case cfg.MinObservations <= 0:
		return &ConfigError{Field: "MinObservations", Reason: "must be > 0"}
	case cfg.Frequency <= 0:
		return &ConfigError{Field: "Frequency", Reason: "must be > 0"}
	case cfg.MaxDistBtwLegs <= 0:
		return &ConfigError{Field: "MaxDistBtwLegs", Reason: "must be > 0"}
	case cfg.LegRadius <= 0:
		return &ConfigError{Field: "LegRadius", Reason: "must be > 0"}
	case cfg.MaxCov <= 0:
		return &ConfigError{Field: "MaxCov", Reason: "must be > 0"}
	case cfg.XUpperLimit <= cfg.XLowerLimit:
		return &ConfigError{Field: "XUpperLimit", Reason: "must be > XLowerLimit"}
	case cfg.YUpperLimit <= cfg.YLowerLimit:
		return &ConfigError{Field: "YUpperLimit", Reason: "must be > YLowerLimit"}
	case cfg.MahalanobisDistGate <= 0:
		return &ConfigError{Field: "MahalanobisDistGate", Reason: "must be > 0"}
	case cfg.MaxCost <= 0:
		return &ConfigError{Field: "MaxCost", Reason: "must be > 0"}
	}
	return nil
}

func (cfg *TrackerConfig) String() string {
	return fmt.Sprintf("TrackerConfig{policy=%d roi=[%.2f,%.2f]x[%.2f,%.2f] freq=%.3f}",
		cfg.Policy, cfg.XLowerLimit, cfg.XUpperLimit, cfg.YLowerLimit, cfg.YUpperLimit, cfg.Frequency)
}
