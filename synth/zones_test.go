package synth

import (
	"testing"
)

func TestGenerateZonesDeterminism(t *testing.T) {
	a, err := GenerateZones(1000, 42)
	if err != nil {
		t.Fatalf("GenerateZones() error = %v", err)
	}
	b, err := GenerateZones(1000, 42)
	if err != nil {
		t.Fatalf("GenerateZones() error = %v", err)
	}

	if a.Len() != b.Len() {
		t.Fatalf("lengths differ: %d vs %d", a.Len(), b.Len())
	}
	for i := 0; i < a.Len(); i++ {
		if a.Distance[i] != b.Distance[i] || a.Mass[i] != b.Mass[i] || a.Zone[i] != b.Zone[i] {
			t.Fatalf("row %d differs between identical runs", i)
		}
	}
}

func TestGenerateZonesFloorsAndColors(t *testing.T) {
	set, err := GenerateZones(2000, 7)
	if err != nil {
		t.Fatalf("GenerateZones() error = %v", err)
	}

	for i := 0; i < set.Len(); i++ {
		if set.Mass[i] < MinZoneMass {
			t.Fatalf("mass %v below floor %v", set.Mass[i], MinZoneMass)
		}
		if set.Radius[i] < MinZoneRadius {
			t.Fatalf("radius %v below floor %v", set.Radius[i], MinZoneRadius)
		}
		if set.Density[i] < MinZoneDensity {
			t.Fatalf("density %v below floor %v", set.Density[i], MinZoneDensity)
		}
		for c := 0; c < 3; c++ {
			if set.Color[i][c] < 0 || set.Color[i][c] > 255 {
				t.Fatalf("color channel %v out of [0, 255]", set.Color[i][c])
			}
		}
		if set.Zone[i] < 0 || set.Zone[i] >= len(Zones) {
			t.Fatalf("zone index %d out of range", set.Zone[i])
		}
	}
}

func TestGenerateZonesEvenSplit(t *testing.T) {
	set, err := GenerateZones(1000, 3)
	if err != nil {
		t.Fatalf("GenerateZones() error = %v", err)
	}

	counts := make(map[int]int)
	for _, z := range set.Zone {
		counts[z]++
	}
	want := set.Len() / len(Zones)
	for zone, got := range counts {
		if got != want {
			t.Errorf("zone %d has %d rows, want %d", zone, got, want)
		}
	}
}

func TestGenerateZonesRejectsTinyCounts(t *testing.T) {
	if _, err := GenerateZones(0, 42); err == nil {
		t.Error("GenerateZones(0) should fail")
	}
	if _, err := GenerateZones(3, 42); err == nil {
		t.Error("GenerateZones with fewer samples than zones should fail")
	}
}
