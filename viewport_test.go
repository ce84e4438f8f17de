package uirender

import "testing"

func TestViewportLogicalSize(t *testing.T) {
	v := NewViewport(1600, 1200, 2)
	if got := v.LogicalSize(); got != (Size{Width: 800, Height: 600}) {
		t.Errorf("LogicalSize() = %+v", got)
	}
	if got := NewViewport(100, 50, 0).Scale(); got != 1 {
		t.Errorf("Scale() with zero factor = %v, want 1", got)
	}
}

func TestViewportProjection(t *testing.T) {
	v := NewViewport(200, 100, 1)
	m := v.Projection()

	apply := func(x, y float32) (float32, float32) {
		return m[0]*x + m[4]*y + m[12], m[1]*x + m[5]*y + m[13]
	}
	cases := []struct{ x, y, cx, cy float32 }{
		{0, 0, -1, 1},
		{200, 100, 1, -1},
		{100, 50, 0, 0},
	}
	for _, c := range cases {
		gx, gy := apply(c.x, c.y)
		if gx != c.cx || gy != c.cy {
			t.Errorf("project(%v,%v) = (%v,%v), want (%v,%v)", c.x, c.y, gx, gy, c.cx, c.cy)
		}
	}
}

func TestViewportDeviceRect(t *testing.T) {
	v := NewViewport(200, 100, 2)
	tests := []struct {
		name       string
		r          Rect
		x, y, w, h uint32
	}{
		{"scaled", NewRect(10, 10, 20, 5), 20, 20, 40, 10},
		{"outward rounding", NewRect(0.25, 0.25, 1, 1), 0, 0, 3, 3},
		{"clamped", NewRect(-10, -10, 500, 500), 0, 0, 200, 100},
		{"offscreen", NewRect(150, 0, 10, 10), 200, 0, 0, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, w, h := v.DeviceRect(tt.r)
			if x != tt.x || y != tt.y || w != tt.w || h != tt.h {
				t.Errorf("DeviceRect() = (%d,%d,%d,%d), want (%d,%d,%d,%d)", x, y, w, h, tt.x, tt.y, tt.w, tt.h)
			}
		})
	}
}
