package legtracker

import "testing"

func TestApplyDefaultsFillsZeroFields(t *testing.T) {
	cfg := &TrackerConfig{}
	cfg.applyDefaults()

	d := DefaultConfig()
	if cfg.Frequency != d.Frequency {
		t.Errorf("expected default frequency %.4f, got %.4f", d.Frequency, cfg.Frequency)
	}
	if cfg.Transform == nil || cfg.Markers == nil || cfg.Logger == nil {
		t.Error("expected default collaborators to be filled in")
	}
}

func TestApplyDefaultsPreservesExplicitValues(t *testing.T) {
	cfg := &TrackerConfig{Frequency: 0.2, MinObservations: 9}
	cfg.applyDefaults()

	if cfg.Frequency != 0.2 {
		t.Errorf("expected explicit frequency preserved, got %.4f", cfg.Frequency)
	}
	if cfg.MinObservations != 9 {
		t.Errorf("expected explicit min observations preserved, got %d", cfg.MinObservations)
	}
}

func TestValidateRejectsMisconfiguration(t *testing.T) {
	cases := []struct {
		name string
		fn   func(*TrackerConfig)
	}{
		{"MinClusterSize", func(c *TrackerConfig) { c.MinClusterSize = 0 }},
		{"MaxClusterSize", func(c *TrackerConfig) { c.MaxClusterSize = 1; c.MinClusterSize = 5 }},
		{"StateDimensions", func(c *TrackerConfig) { c.StateDimensions = 4 }},
		{"MinObservations", func(c *TrackerConfig) { c.MinObservations = 0 }},
		{"Frequency", func(c *TrackerConfig) { c.Frequency = 0 }},
		{"MaxDistBtwLegs", func(c *TrackerConfig) { c.MaxDistBtwLegs = 0 }},
		{"LegRadius", func(c *TrackerConfig) { c.LegRadius = 0 }},
		{"MaxCov", func(c *TrackerConfig) { c.MaxCov = 0 }},
		{"XUpperLimit", func(c *TrackerConfig) { c.XUpperLimit = c.XLowerLimit }},
		{"YUpperLimit", func(c *TrackerConfig) { c.YUpperLimit = c.YLowerLimit }},
		{"MahalanobisDistGate", func(c *TrackerConfig) { c.MahalanobisDistGate = 0 }},
		{"MaxCost", func(c *TrackerConfig) { c.MaxCost = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.fn(cfg)
			if err := cfg.validate(); err == nil {
				t.Errorf("expected validation error for %s", tc.name)
			}
		})
	}
}

func TestApplyDefaultsDerivesPolicyFromOnePersonFlag(t *testing.T) {
	cfg := &TrackerConfig{IsOnePersonToTrack: true}
	cfg.applyDefaults()

	if cfg.Policy != PolicySinglePerson {
		t.Errorf("expected Policy derived from IsOnePersonToTrack, got %d", cfg.Policy)
	}
}

func TestApplyDefaultsDerivesPolicyFromBoundingBoxFlag(t *testing.T) {
	cfg := &TrackerConfig{IsBoundingBoxTracking: true}
	cfg.applyDefaults()

	if cfg.Policy != PolicyBoundingBoxZone {
		t.Errorf("expected Policy derived from IsBoundingBoxTracking, got %d", cfg.Policy)
	}
}

func TestApplyDefaultsReflectsExplicitPolicyOntoFlags(t *testing.T) {
	cfg := &TrackerConfig{Policy: PolicyBoundingBoxZone}
	cfg.applyDefaults()

	if !cfg.IsBoundingBoxTracking {
		t.Error("expected IsBoundingBoxTracking set to match an explicitly chosen Policy")
	}
}

func TestValidateRejectsConflictingModeFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.IsOnePersonToTrack = true
	cfg.IsBoundingBoxTracking = true

	if err := cfg.validate(); err == nil {
		t.Error("expected validation error for mutually exclusive mode flags")
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.validate(); err != nil {
		t.Errorf("expected default config to validate, got %v", err)
	}
}

func TestNewTrackerRejectsNilConfig(t *testing.T) {
	if _, err := NewTracker(nil); err == nil {
		t.Error("expected error for nil config")
	}
}

func TestNewTrackerRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinClusterSize = -1
	if _, err := NewTracker(cfg); err == nil {
		t.Error("expected error for invalid config")
	}
}

func TestNewTrackerSucceedsWithDefaults(t *testing.T) {
	tr, err := NewTracker(DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr == nil {
		t.Fatal("expected non-nil tracker")
	}
}
