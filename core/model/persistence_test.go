package model

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"
)

type fakeParams struct {
	Weights   []float64 `json:"weights"`
	Intercept float64   `json:"intercept"`
}

func TestArtifactRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")

	in := fakeParams{Weights: []float64{0.5, -1.25}, Intercept: 3.0}
	if err := SaveArtifact(path, "PropertyModel", "1.0", in); err != nil {
		t.Fatalf("SaveArtifact() error = %v", err)
	}

	raw, err := LoadArtifact(path, "PropertyModel")
	if err != nil {
		t.Fatalf("LoadArtifact() error = %v", err)
	}

	var out fakeParams
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("params payload did not unmarshal: %v", err)
	}
	if out.Intercept != in.Intercept || len(out.Weights) != 2 {
		t.Errorf("round trip mismatch: got %+v, want %+v", out, in)
	}
}

func TestLoadArtifactNameMismatch(t *testing.T) {
	var buf bytes.Buffer
	if err := SaveArtifactToWriter(&buf, "GaussianMixture", "1.0", fakeParams{}); err != nil {
		t.Fatalf("SaveArtifactToWriter() error = %v", err)
	}

	if _, err := LoadArtifactFromReader(&buf, "PropertyModel"); err == nil {
		t.Fatal("expected name mismatch error, got nil")
	}
}

func TestStateManagerRequireFitted(t *testing.T) {
	s := NewStateManager()
	if err := s.RequireFitted("PropertyModel", "Predict"); err == nil {
		t.Fatal("expected error before fitting")
	}

	s.SetFitted()
	if err := s.RequireFitted("PropertyModel", "Predict"); err != nil {
		t.Fatalf("unexpected error after SetFitted: %v", err)
	}

	s.Reset()
	if s.IsFitted() {
		t.Error("Reset() should clear the fitted state")
	}
}
