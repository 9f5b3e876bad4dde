/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package stroke

// Path is a polyline: the first point is a move, each later point a line-to
// from its predecessor. A path with fewer than two points has no segments.
type Path struct{ pts []Point }

// NewPath returns a path holding a copy of pts.
func NewPath(pts ...Point) Path {
	p := Path{}
	if len(pts) > 0 {
		p.pts = append(make([]Point, 0, len(pts)), pts...)
	}
	return p
}

// Append adds a point at the end. Valid on an empty path.
func (p *Path) Append(pt Point) { p.pts = append(p.pts, pt) }

// Len returns the number of points.
func (p Path) Len() int { return len(p.pts) }

// Empty reports whether the path holds no points.
func (p Path) Empty() bool { return len(p.pts) == 0 }

// Points returns the ordered points. The slice is a copy.
func (p Path) Points() []Point {
	if len(p.pts) == 0 {
		return nil
	}
	out := make([]Point, len(p.pts))
	copy(out, p.pts)
	return out
}

// At returns the i-th point.
func (p Path) At(i int) Point { return p.pts[i] }

// Segment is one line-to from A to B.
type Segment struct{ A, B Point }

// Segments returns the renderable line segments in drawing order.
func (p Path) Segments() []Segment {
	if len(p.pts) < 2 {
		return nil
	}
	out := make([]Segment, 0, len(p.pts)-1)
	for i := 1; i < len(p.pts); i++ {
		out = append(out, Segment{A: p.pts[i-1], B: p.pts[i]})
	}
	return out
}

// Bounds returns the axis-aligned box of the points (zero Rect for an empty path).
// Stroke width is not included.
func (p Path) Bounds() Rect {
	if len(p.pts) == 0 {
		return Rect{}
	}
	minX, minY := p.pts[0].X, p.pts[0].Y
	maxX, maxY := minX, minY
	for _, pt := range p.pts[1:] {
		minX = min(minX, pt.X)
		minY = min(minY, pt.Y)
		maxX = max(maxX, pt.X)
		maxY = max(maxY, pt.Y)
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Equal reports whether both paths hold the same points in the same order.
func (p Path) Equal(o Path) bool {
	if len(p.pts) != len(o.pts) {
		return false
	}
	for i := range p.pts {
		if p.pts[i] != o.pts[i] {
			return false
		}
	}
	return true
}

// Freeze returns a path that shares no spare capacity with p, so appending to
// either can never write into the other's points.
func (p Path) Freeze() Path {
	n := len(p.pts)
	return Path{pts: p.pts[:n:n]}
}
