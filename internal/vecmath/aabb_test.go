package vecmath

import "testing"

func TestAABBIntersectSlab(t *testing.T) {
	box := AABB{Min: VectorR3{-1, -1, -1}, Max: VectorR3{1, 1, 1}}
	origin := VectorR3{0, 0, -5}
	dir := VectorR3{0, 0, 1}
	entry, exit, hit := box.Intersect(origin, dir.Inv(), 0, 1e9)
	if !hit {
		t.Fatalf("expected hit")
	}
	if entry < 3.9 || entry > 4.1 {
		t.Errorf("entry = %v, want ~4", entry)
	}
	if exit < 5.9 || exit > 6.1 {
		t.Errorf("exit = %v, want ~6", exit)
	}
}

func TestAABBIntersectMiss(t *testing.T) {
	box := AABB{Min: VectorR3{-1, -1, -1}, Max: VectorR3{1, 1, 1}}
	origin := VectorR3{10, 10, -5}
	dir := VectorR3{0, 0, 1}
	_, _, hit := box.Intersect(origin, dir.Inv(), 0, 1e9)
	if hit {
		t.Errorf("expected miss")
	}
}

func TestAABBEnclose(t *testing.T) {
	a := AABB{Min: VectorR3{0, 0, 0}, Max: VectorR3{1, 1, 1}}
	b := AABB{Min: VectorR3{-1, 2, 0}, Max: VectorR3{0.5, 3, 1}}
	e := a.Enclose(b)
	if e.Min != (VectorR3{-1, 0, 0}) || e.Max != (VectorR3{1, 3, 1}) {
		t.Errorf("unexpected enclose result: %+v", e)
	}
}

func TestRigidMapTranslateAndRotate(t *testing.T) {
	m := Identity().Translate(VectorR3{1, 2, 3})
	p := m.Apply(VectorR3{0, 0, 0})
	if p != (VectorR3{1, 2, 3}) {
		t.Errorf("translate: got %+v", p)
	}

	r := Identity().RotateAxis(VectorR3{0, 0, 1}, 90)
	q := r.Apply(VectorR3{1, 0, 0})
	if q.X > 1e-6 || q.X < -1e-6 {
		t.Errorf("rotated X should be ~0, got %v", q.X)
	}
	if q.Y < 0.999 {
		t.Errorf("rotated Y should be ~1, got %v", q.Y)
	}
}
