package scene

import (
	"testing"

	"github.com/grayscene/gray/internal/kdtree"
	"github.com/grayscene/gray/internal/material"
	"github.com/grayscene/gray/internal/vecmath"
)

func flat(y float64) material.Table {
	return material.Table{X: []float64{0, 2}, Y: []float64{y, y}}
}

func TestSeekIntersectionSphere(t *testing.T) {
	s := New(nil)
	mat := material.NewGammaStats("water", flat(0.01), flat(0.02), flat(0.005), flat(1), flat(1))
	s.AddMaterial(mat)
	s.AddViewable(&Sphere{BaseViewable: BaseViewable{Mat: mat, Det: -1}, Center: vecmath.VectorR3{}, Radius: 5})
	if err := s.Build(kdtree.BuildOptions{}); err != nil {
		t.Fatalf("Build: %v", err)
	}

	dist, vp, ok := s.SeekIntersection(vecmath.VectorR3{X: -20}, vecmath.VectorR3{X: 1})
	if !ok {
		t.Fatalf("expected hit")
	}
	if dist < 14.9 || dist > 15.1 {
		t.Errorf("dist = %v, want ~15", dist)
	}
	if !vp.Front {
		t.Errorf("expected front-face hit entering the sphere")
	}
}

func TestSeekIntersectionMiss(t *testing.T) {
	s := New(nil)
	mat := material.NewGammaStats("water", flat(0.01), flat(0.02), flat(0.005), flat(1), flat(1))
	s.AddViewable(&Sphere{BaseViewable: BaseViewable{Mat: mat, Det: -1}, Center: vecmath.VectorR3{}, Radius: 5})
	if err := s.Build(kdtree.BuildOptions{}); err != nil {
		t.Fatalf("Build: %v", err)
	}
	_, _, ok := s.SeekIntersection(vecmath.VectorR3{X: -20, Y: 100}, vecmath.VectorR3{X: 1})
	if ok {
		t.Errorf("expected miss")
	}
}
