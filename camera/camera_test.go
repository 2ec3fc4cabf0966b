package camera

import "testing"

func TestNew(t *testing.T) {
	cam := New(20, 10, 40, 20)

	// Should be centered on world
	if cam.X != 20 || cam.Y != 10 {
		t.Errorf("expected camera at (20, 10), got (%d, %d)", cam.X, cam.Y)
	}
}

func TestWholeWorldFits(t *testing.T) {
	cam := New(80, 30, 40, 20)
	cam.Follow(39, 19)

	minX, minY, maxX, maxY := cam.VisibleWorldBounds()
	if minX != 0 || minY != 0 || maxX != 40 || maxY != 20 {
		t.Errorf("got bounds (%d,%d)-(%d,%d), want (0,0)-(40,20)", minX, minY, maxX, maxY)
	}
	if sx, sy, ok := cam.WorldToScreen(39, 19); !ok || sx != 39 || sy != 19 {
		t.Errorf("WorldToScreen(39,19) = (%d,%d,%v), want (39,19,true)", sx, sy, ok)
	}
}

func TestFollowClampsToEdges(t *testing.T) {
	tests := []struct {
		name           string
		followX        int
		followY        int
		wantOX, wantOY int
	}{
		{"center", 20, 10, 10, 5},
		{"top-left corner", 0, 0, 0, 0},
		{"bottom-right corner", 39, 19, 20, 10},
		{"near left edge", 3, 10, 0, 5},
		{"outside the world", 100, -5, 20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := New(20, 10, 40, 20)
			cam.Follow(tt.followX, tt.followY)
			ox, oy := cam.Origin()
			if ox != tt.wantOX || oy != tt.wantOY {
				t.Errorf("got origin (%d,%d), want (%d,%d)", ox, oy, tt.wantOX, tt.wantOY)
			}
		})
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(20, 10, 40, 20)
	cam.Follow(30, 4)

	testCases := []struct{ sx, sy int }{
		{0, 0},
		{10, 5},
		{19, 9},
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy, ok := cam.WorldToScreen(wx, wy)
		if !ok || sx != tc.sx || sy != tc.sy {
			t.Errorf("roundtrip failed: (%d,%d) -> (%d,%d) -> (%d,%d,%v)",
				tc.sx, tc.sy, wx, wy, sx, sy, ok)
		}
	}
}

func TestWorldToScreenHidden(t *testing.T) {
	cam := New(20, 10, 40, 20)
	cam.Follow(0, 0)

	if _, _, ok := cam.WorldToScreen(19, 9); !ok {
		t.Error("expected (19,9) visible")
	}
	if _, _, ok := cam.WorldToScreen(20, 9); ok {
		t.Error("expected (20,9) hidden")
	}
}

func TestFollowClampAndResize(t *testing.T) {
	cam := New(20, 10, 40, 20)
	cam.Follow(-100, 0)
	if cam.X != 0 {
		t.Errorf("expected follow to clamp at 0, got %d", cam.X)
	}

	cam.Resize(0, -3)
	if cam.ViewportW != 1 || cam.ViewportH != 1 {
		t.Errorf("expected viewport clamped to 1x1, got %dx%d", cam.ViewportW, cam.ViewportH)
	}

	cam.Reset()
	if cam.X != 20 || cam.Y != 10 {
		t.Errorf("expected reset to (20, 10), got (%d, %d)", cam.X, cam.Y)
	}
}
