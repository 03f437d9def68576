package main

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestParseRay(t *testing.T) {
	ray, err := parseRay("5, 0, 0:-2,0,0")
	if err != nil {
		t.Fatalf("parseRay failed: %v", err)
	}
	if ray.Origin != (rl.Vector3{X: 5}) {
		t.Errorf("Expected origin (5,0,0), got %v", ray.Origin)
	}
	if ray.Direction != (rl.Vector3{X: -1}) {
		t.Errorf("Expected normalized direction (-1,0,0), got %v", ray.Direction)
	}
}

func TestParseRayErrors(t *testing.T) {
	for _, s := range []string{"1,2,3", "1,2:1,0,0", "0,0,0:0,0,0", "a,b,c:1,0,0"} {
		if _, err := parseRay(s); err == nil {
			t.Errorf("Expected error for %q", s)
		}
	}
}

func TestParseVec2(t *testing.T) {
	v, err := parseVec2("160,90")
	if err != nil {
		t.Fatalf("parseVec2 failed: %v", err)
	}
	if v != (rl.Vector2{X: 160, Y: 90}) {
		t.Errorf("Expected (160,90), got %v", v)
	}
	if _, err := parseVec2("1,2,3"); err == nil {
		t.Error("Expected error for three numbers")
	}
}
