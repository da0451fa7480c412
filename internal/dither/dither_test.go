package dither

import (
	"math"
	"testing"

	"github.com/FabianRolfMatthiasNoll/monoboy/internal/display"
	"github.com/FabianRolfMatthiasNoll/monoboy/internal/lcd"
)

var shades = []lcd.Shade{lcd.Black, lcd.DarkGrey, lcd.LightGrey, lcd.White}

func TestGeometry(t *testing.T) {
	if VisibleWidth != 266 || VisibleHeight != display.Height || StartX != 67 {
		t.Fatalf("geometry got w=%d h=%d startX=%d", VisibleWidth, VisibleHeight, StartX)
	}
	if StartX+VisibleWidth > display.Width {
		t.Fatal("scaled image overflows the panel")
	}
}

func TestScaleMatchesFloatFloor(t *testing.T) {
	const scale = float32(1.6666666667)
	for y := 0; y < VisibleHeight; y++ {
		for x := 0; x < VisibleWidth; x++ {
			sx, sy := Scale(x, y)
			wx := int(math.Floor(float64(float32(x) / scale)))
			wy := int(math.Floor(float64(float32(y) / scale)))
			if sx != wx || sy != wy {
				t.Fatalf("Scale(%d,%d) got (%d,%d) want (%d,%d)", x, y, sx, sy, wx, wy)
			}
			if sx < 0 || sx >= lcd.Width || sy < 0 || sy >= lcd.Height {
				t.Fatalf("Scale(%d,%d) = (%d,%d) outside source", x, y, sx, sy)
			}
			if ax, ay := Scale(x, y); ax != sx || ay != sy {
				t.Fatalf("Scale(%d,%d) not deterministic", x, y)
			}
		}
	}
}

func TestScaleCoversEverySourcePixel(t *testing.T) {
	seenX := make([]bool, lcd.Width)
	for x := 0; x < VisibleWidth; x++ {
		sx, _ := Scale(x, 0)
		seenX[sx] = true
	}
	for sx, ok := range seenX {
		if !ok {
			t.Fatalf("source column %d never sampled", sx)
		}
	}
}

func TestScaleOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	Scale(VisibleWidth, 0)
}

func TestExtremes(t *testing.T) {
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if Lit(lcd.Black, x, y) {
				t.Fatalf("black lit at (%d,%d)", x, y)
			}
			if !Lit(lcd.White, x, y) {
				t.Fatalf("white unlit at (%d,%d)", x, y)
			}
		}
	}
}

func TestPatterns(t *testing.T) {
	// rows 0 and 1 for the first six columns
	dark := [2]string{"#..#..", "..#..#"}
	light := [2]string{"#.#.#.", ".#.#.#"}
	check := func(s lcd.Shade, want [2]string) {
		for y := 0; y < 2; y++ {
			for x := 0; x < 6; x++ {
				if got := Lit(s, x, y); got != (want[y][x] == '#') {
					t.Fatalf("%s (%d,%d) got %v", s, x, y, got)
				}
			}
		}
	}
	check(lcd.DarkGrey, dark)
	check(lcd.LightGrey, light)
}

func TestDensity(t *testing.T) {
	const n = 300
	for _, tc := range []struct {
		s    lcd.Shade
		want float64
	}{{lcd.DarkGrey, 1.0 / 3}, {lcd.LightGrey, 0.5}} {
		on := 0
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				if Lit(tc.s, x, y) {
					on++
				}
			}
		}
		got := float64(on) / (n * n)
		if math.Abs(got-tc.want) > 0.005 {
			t.Fatalf("%s density got %.4f want %.4f", tc.s, got, tc.want)
		}
	}
}

func TestPatternRepeats(t *testing.T) {
	// DarkGrey repeats every 3 columns, LightGrey every 2, both every 2 rows
	for _, tc := range []struct {
		s      lcd.Shade
		period int
	}{{lcd.DarkGrey, 3}, {lcd.LightGrey, 2}} {
		for y := 0; y < 8; y++ {
			for x := 0; x < 24; x++ {
				want := (x+y%2)%tc.period == 0
				if got := Lit(tc.s, x, y); got != want {
					t.Fatalf("%s (%d,%d) got %v want %v", tc.s, x, y, got, want)
				}
				if Lit(tc.s, x+tc.period, y) != want || Lit(tc.s, x, y+2) != want {
					t.Fatalf("%s not periodic at (%d,%d)", tc.s, x, y)
				}
			}
		}
	}
}

func TestUnknownShadePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	Lit(lcd.Shade(4), 0, 0)
}
