package kdtree

import "github.com/grayscene/gray/internal/vecmath"

type frame struct {
	node       int32
	tmin, tmax float64
}

// Traverse walks the tree for a ray, invoking cb for every object in every visited
// leaf in near-to-far order, per spec.md §4.1 "Traversal". It returns (-1, maxDist,
// false) when no object is hit. Traversal is stackless except for a fixed-depth array
// (MaxDepth), per spec.md's "stackless" requirement.
func (t *Tree) Traverse(origin, dir vecmath.VectorR3, maxDist float64, cb Callback) (objID int, dist float64, hit bool) {
	if len(t.nodes) == 0 {
		return -1, maxDist, false
	}
	dirInv := dir.Inv()
	rootEntry, rootExit, rootHit := t.nodes[t.root].bound.Intersect(origin, dirInv, 0, maxDist)
	if !rootHit {
		return -1, maxDist, false
	}

	var stack [MaxDepth]frame
	sp := 0
	cur := frame{node: t.root, tmin: rootEntry, tmax: rootExit}

	best := objID
	bestDist := maxDist
	found := false

	for {
		if cur.node < 0 {
			if sp == 0 {
				break
			}
			sp--
			cur = stack[sp]
			continue
		}
		if cur.tmin > bestDist {
			// A closer hit has already been recorded than this cell's entry;
			// per spec.md, skip it outright.
			if sp == 0 {
				break
			}
			sp--
			cur = stack[sp]
			continue
		}

		n := &t.nodes[cur.node]
		if n.isLeaf {
			for _, oid := range n.objects {
				if nb, improved := cb(int(oid), origin, dir, bestDist); improved {
					bestDist = nb
					best = int(oid)
					found = true
				}
			}
			if sp == 0 {
				break
			}
			sp--
			cur = stack[sp]
			continue
		}

		axis := int(n.axis)
		dAxis := dir.Component(axis)
		oAxis := origin.Component(axis)

		if dAxis == 0 {
			// Ray parallel to the split plane: descend into whichever side the
			// origin lies on. If it sits exactly on the plane, both sides are
			// visited (push the far side as the spec's "parallel hit
			// outstanding" caveat requires).
			if oAxis <= n.splitVal {
				if oAxis == n.splitVal && n.right >= 0 && sp < MaxDepth {
					stack[sp] = frame{node: n.right, tmin: cur.tmin, tmax: cur.tmax}
					sp++
				}
				cur = frame{node: n.left, tmin: cur.tmin, tmax: cur.tmax}
			} else {
				cur = frame{node: n.right, tmin: cur.tmin, tmax: cur.tmax}
			}
			continue
		}

		splitDist := (n.splitVal - oAxis) / dAxis
		near, far := n.left, n.right
		if dAxis < 0 {
			near, far = far, near
		}

		switch {
		case splitDist < cur.tmin:
			cur = frame{node: far, tmin: cur.tmin, tmax: cur.tmax}
		case splitDist > cur.tmax:
			cur = frame{node: near, tmin: cur.tmin, tmax: cur.tmax}
		default:
			if far >= 0 && sp < MaxDepth {
				stack[sp] = frame{node: far, tmin: splitDist, tmax: cur.tmax}
				sp++
			}
			cur = frame{node: near, tmin: cur.tmin, tmax: splitDist}
		}
	}

	if !found {
		return -1, maxDist, false
	}
	return best, bestDist, true
}
