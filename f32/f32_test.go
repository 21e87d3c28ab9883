// SPDX-License-Identifier: Unlicense OR MIT

package f32

import "testing"

func TestRectContains(t *testing.T) {
	r := Rect(10, 10, 0, 0)
	if r.Min != Pt(0, 0) || r.Max != Pt(10, 10) {
		t.Fatalf("Rect did not canonicalize: %v", r)
	}
	tests := []struct {
		p    Point
		want bool
	}{
		{Pt(0, 0), true},
		{Pt(9.5, 9.5), true},
		{Pt(10, 5), false},
		{Pt(5, 10), false},
		{Pt(-0.1, 5), false},
	}
	for _, tc := range tests {
		if got := r.Contains(tc.p); got != tc.want {
			t.Errorf("%v.Contains(%v) = %v, want %v", r, tc.p, got, tc.want)
		}
	}
	if got := r.Add(Pt(5, 5)); got.Contains(Pt(2, 2)) {
		t.Errorf("offset rectangle %v still contains (2,2)", got)
	}
	if !(Rectangle{}).Empty() {
		t.Error("zero rectangle not empty")
	}
}
