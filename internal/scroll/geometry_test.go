package scroll

import (
	"math"
	"testing"
)

func TestGlobalProgress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		vp     Viewport
		want   float64
		wantOK bool
	}{
		{"halfway", Viewport{ScrollTop: 1000, Height: 1000, DocumentHeight: 3000}, 0.5, true},
		{"top", Viewport{ScrollTop: 0, Height: 1000, DocumentHeight: 3000}, 0, true},
		{"bottom", Viewport{ScrollTop: 2000, Height: 1000, DocumentHeight: 3000}, 1, true},
		{"overscroll", Viewport{ScrollTop: 2100, Height: 1000, DocumentHeight: 3000}, 1, true},
		{"single screen", Viewport{ScrollTop: 0, Height: 1000, DocumentHeight: 1000}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := GlobalProgress(tt.vp)
			if got != tt.want || ok != tt.wantOK {
				t.Fatalf("GlobalProgress() = %v, %t, want %v, %t", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestLocalProgress(t *testing.T) {
	t.Parallel()

	got := LocalProgress(Rect{Top: -600, Bottom: 200, Height: 800}, 1000)
	want := 1 - 200.0/1800.0
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("LocalProgress() = %v, want %v", got, want)
	}
	if math.Abs(got-0.889) > 0.001 {
		t.Fatalf("LocalProgress() = %v, want ~0.889", got)
	}
}

func TestLocalProgressClamps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		r    Rect
		want float64
	}{
		{"far below viewport", Rect{Top: 5000, Bottom: 5800, Height: 800}, 0},
		{"far above viewport", Rect{Top: -5000, Bottom: -4200, Height: 800}, 1},
		{"zero span", Rect{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vh := 1000.0
			if tt.name == "zero span" {
				vh = 0
			}
			if got := LocalProgress(tt.r, vh); got != tt.want {
				t.Fatalf("LocalProgress() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVisibleRatio(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		r    Rect
		want float64
	}{
		{"fully inside", Rect{Top: 100, Bottom: 500, Height: 400}, 1},
		{"half below", Rect{Top: 800, Bottom: 1200, Height: 400}, 0.5},
		{"outside", Rect{Top: 1200, Bottom: 1600, Height: 400}, 0},
		{"empty", Rect{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VisibleRatio(tt.r, 1000); got != tt.want {
				t.Fatalf("VisibleRatio() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClampNaN(t *testing.T) {
	t.Parallel()

	if got := Clamp(math.NaN()); got != 0 {
		t.Fatalf("Clamp(NaN) = %v, want 0", got)
	}
	if got := Clamp(math.Inf(1)); got != 1 {
		t.Fatalf("Clamp(+Inf) = %v, want 1", got)
	}
}
