package model

import (
	"encoding/json"
	"fmt"
	"math"
)

// FeatureVector holds the 23 feature values of one URL in canonical order.
// Being an array, it is copied by value and cannot alias another vector.
type FeatureVector [NumFeatures]float64

// Get returns the value of feature f, or 0 when f is out of range.
func (v *FeatureVector) Get(f Feature) float64 {
	if !f.Valid() {
		return 0
	}
	return v[f]
}

// Set stores value for feature f. Non-finite values are stored as 0 so a
// vector never carries NaN or Inf.
func (v *FeatureVector) Set(f Feature, value float64) {
	if !f.Valid() {
		return
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		value = 0
	}
	v[f] = value
}

// Value returns the value of the named feature.
func (v *FeatureVector) Value(name string) (float64, bool) {
	f, ok := LookupFeature(name)
	if !ok {
		return 0, false
	}
	return v[f], true
}

// Slice returns the values as a new slice in canonical order.
func (v *FeatureVector) Slice() []float64 {
	s := make([]float64, NumFeatures)
	copy(s, v[:])
	return s
}

// Map returns the values keyed by feature name.
func (v *FeatureVector) Map() map[string]float64 {
	m := make(map[string]float64, NumFeatures)
	for i, name := range featureNames {
		m[name] = v[i]
	}
	return m
}

// MarshalJSON encodes the vector as an object keyed by feature name.
func (v FeatureVector) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Map())
}

// UnmarshalJSON decodes an object keyed by feature name.
// Unknown names are ignored and missing names are left at 0.
func (v *FeatureVector) UnmarshalJSON(data []byte) error {
	var m map[string]float64
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("failed to decode feature vector: %w", err)
	}
	*v = FeatureVector{}
	for name, value := range m {
		if f, ok := LookupFeature(name); ok {
			v.Set(f, value)
		}
	}
	return nil
}
