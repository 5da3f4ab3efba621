package gesture

// HitTarget is one element under the pointer that may carry recognizers.
type HitTarget interface {
	GestureRecognizers() []Recognizer
}

// HitTester resolves a global position to the targets under it, innermost
// (topmost) first.
type HitTester interface {
	HitTest(pos Vec2) []HitTarget
}

// HitTesterFunc adapts a function to HitTester.
type HitTesterFunc func(pos Vec2) []HitTarget

// HitTest calls f(pos).
func (f HitTesterFunc) HitTest(pos Vec2) []HitTarget { return f(pos) }

// --- Built-in HitShape types ---

// HitShape is a hit area in region-local coordinates.
type HitShape interface {
	Contains(x, y float64) bool
}

// HitRect is an axis-aligned rectangular hit area.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	return Vec2{x - c.CenterX, y - c.CenterY}.LenSq() <= c.Radius*c.Radius
}

// HitPolygon is a convex polygon hit area in either winding order.
type HitPolygon struct {
	Points []Vec2
}

// Contains reports whether (x, y) lies inside the polygon: the point must be
// on the same side of every edge.
func (p HitPolygon) Contains(x, y float64) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}
	pt := Vec2{x, y}
	var positive, negative bool
	for i, a := range p.Points {
		b := p.Points[(i+1)%n]
		cross := b.Sub(a).Cross(pt.Sub(a))
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}

// --- Regions ---

// regionIDCounter is a plain counter; regions are built on the dispatch
// thread.
var regionIDCounter uint64

func nextRegionID() uint64 {
	regionIDCounter++
	return regionIDCounter
}

// Region is a node of a RegionTree: an optional hit shape positioned at
// Offset from its parent, plus the recognizers attached to it.
type Region struct {
	ID     uint64
	Name   string
	Shape  HitShape
	Offset Vec2
	ZIndex int
	// Disabled regions and their subtrees are never hit.
	Disabled bool

	parent         *Region
	children       []*Region
	sortedChildren []*Region
	childrenSorted bool
	recognizers    []Recognizer
}

// NewRegion creates a region. A nil shape makes a pure container that is
// only hit through its children.
func NewRegion(name string, shape HitShape) *Region {
	return &Region{ID: nextRegionID(), Name: name, Shape: shape}
}

// AddChild attaches c under r, detaching it from any previous parent.
func (r *Region) AddChild(c *Region) {
	if c.parent != nil {
		c.parent.RemoveChild(c)
	}
	c.parent = r
	r.children = append(r.children, c)
	r.childrenSorted = false
}

// RemoveChild detaches c from r.
func (r *Region) RemoveChild(c *Region) {
	for i, v := range r.children {
		if v == c {
			r.children = append(r.children[:i], r.children[i+1:]...)
			c.parent = nil
			r.childrenSorted = false
			return
		}
	}
}

// SetZIndex changes the stacking order among siblings.
func (r *Region) SetZIndex(z int) {
	r.ZIndex = z
	if r.parent != nil {
		r.parent.childrenSorted = false
	}
}

// Parent returns the parent region, or nil.
func (r *Region) Parent() *Region { return r.parent }

// AddGesture attaches a recognizer and makes r its owner.
func (r *Region) AddGesture(rec Recognizer) {
	for _, v := range r.recognizers {
		if v == rec {
			return
		}
	}
	rec.SetOwnerID(r.ID)
	r.recognizers = append(r.recognizers, rec)
}

// RemoveGesture detaches and disposes a recognizer.
func (r *Region) RemoveGesture(rec Recognizer) {
	for i, v := range r.recognizers {
		if v == rec {
			r.recognizers = append(r.recognizers[:i], r.recognizers[i+1:]...)
			rec.Dispose()
			return
		}
	}
}

// GestureRecognizers implements HitTarget.
func (r *Region) GestureRecognizers() []Recognizer { return r.recognizers }

// WorldOffset returns the region origin in global coordinates.
func (r *Region) WorldOffset() Vec2 {
	var o Vec2
	for n := r; n != nil; n = n.parent {
		o = o.Add(n.Offset)
	}
	return o
}

// Contains reports whether the global position pos lies inside the region's
// own shape. Containers contain nothing.
func (r *Region) Contains(pos Vec2) bool {
	if r.Shape == nil {
		return false
	}
	l := pos.Sub(r.WorldOffset())
	return r.Shape.Contains(l.X, l.Y)
}

func (r *Region) sorted() []*Region {
	if r.childrenSorted {
		return r.sortedChildren
	}
	nc := len(r.children)
	if cap(r.sortedChildren) < nc {
		r.sortedChildren = make([]*Region, nc)
	}
	r.sortedChildren = r.sortedChildren[:nc]
	copy(r.sortedChildren, r.children)
	// Stable insertion sort by ZIndex.
	for i := 1; i < nc; i++ {
		key := r.sortedChildren[i]
		j := i - 1
		for j >= 0 && r.sortedChildren[j].ZIndex > key.ZIndex {
			r.sortedChildren[j+1] = r.sortedChildren[j]
			j--
		}
		r.sortedChildren[j+1] = key
	}
	r.childrenSorted = true
	return r.sortedChildren
}

// RegionTree is a HitTester over a tree of regions. Later siblings and
// higher ZIndex values are on top.
type RegionTree struct {
	root   *Region
	hitBuf []*Region
}

// NewRegionTree creates a tree with an empty container root.
func NewRegionTree() *RegionTree {
	return &RegionTree{root: NewRegion("root", nil)}
}

// Root returns the root region.
func (t *RegionTree) Root() *Region { return t.root }

// collect walks the tree in painter order, appending regions with a shape.
func (t *RegionTree) collect(r *Region, buf []*Region) []*Region {
	if r.Disabled {
		return buf
	}
	if r.Shape != nil {
		buf = append(buf, r)
	}
	for _, c := range r.sorted() {
		buf = t.collect(c, buf)
	}
	return buf
}

// Topmost returns the topmost region whose shape contains pos, or nil.
func (t *RegionTree) Topmost(pos Vec2) *Region {
	t.hitBuf = t.collect(t.root, t.hitBuf[:0])
	// Iterate backward (reverse painter order): topmost region first.
	for i := len(t.hitBuf) - 1; i >= 0; i-- {
		if r := t.hitBuf[i]; r.Contains(pos) {
			return r
		}
	}
	return nil
}

// HitTest implements HitTester: the topmost region under pos followed by its
// ancestors, innermost first. Ancestors are included whether or not their
// own shape contains pos.
func (t *RegionTree) HitTest(pos Vec2) []HitTarget {
	hit := t.Topmost(pos)
	if hit == nil {
		return nil
	}
	var out []HitTarget
	for r := hit; r != nil; r = r.parent {
		out = append(out, r)
	}
	return out
}
