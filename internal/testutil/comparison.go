package testutil

import (
	"encoding/json"
	"os"
	"testing"
)

// CompareJSON compares two JSON files with float tolerance.
func CompareJSON(t *testing.T, actualPath, goldenPath string, floatTolerance float64) {
	t.Helper()

	// Load actual JSON
	actualData, err := os.ReadFile(actualPath)
	if err != nil {
		t.Fatalf("Failed to read actual JSON: %v", err)
	}

	// Load golden JSON
	goldenData, err := os.ReadFile(goldenPath)
	if err != nil {
		t.Fatalf("Failed to read golden JSON: %v", err)
	}

	// Parse JSON
	var actual, golden interface{}
	if err := json.Unmarshal(actualData, &actual); err != nil {
		t.Fatalf("Failed to parse actual JSON: %v", err)
	}
	if err := json.Unmarshal(goldenData, &golden); err != nil {
		t.Fatalf("Failed to parse golden JSON: %v", err)
	}

	// Deep compare with float tolerance
	if !jsonEqual(actual, golden, floatTolerance) {
		t.Errorf("JSON data mismatch")
		t.Logf("Actual JSON: %s", string(actualData))
		t.Logf("Golden JSON: %s", string(goldenData))
	}
}

// jsonEqual recursively compares JSON structures with float tolerance.
func jsonEqual(a, b interface{}, tolerance float64) bool {
	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		if !ok {
			return false
		}
		return AlmostEqual(av, bv, tolerance)

	case map[string]interface{}:
		bv, ok := b.(map[string]interface{})
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			if !jsonEqual(v, bv[k], tolerance) {
				return false
			}
		}
		return true

	case []interface{}:
		bv, ok := b.([]interface{})
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !jsonEqual(av[i], bv[i], tolerance) {
				return false
			}
		}
		return true

	default:
		return a == b
	}
}
