package points

import (
	"math"
	"testing"
)

// tenPairs is (0,-1), (10,-1), ..., (90,-1).
func tenPairs() []float64 {
	buf := make([]float64, 0, 20)
	for i := 0; i < 10; i++ {
		buf = append(buf, float64(i*10), -1)
	}
	return buf
}

func TestBinSearchXExactHits(t *testing.T) {
	buf := tenPairs()
	for i := 0; i < 10; i++ {
		if got := BinSearchX(buf, float64(i*10)); got != 2*i {
			t.Errorf("BinSearchX(%d) = %d, want %d", i*10, got, 2*i)
		}
	}
}

func TestBinSearchXBetweenPairs(t *testing.T) {
	buf := tenPairs()
	tests := []struct {
		x    float64
		want int
	}{
		{4, 0},
		{6, 2},
		{100000, 18},
		{-5, 0},
		{89, 18},
		{44.9, 8},
		{45.1, 10},
	}
	for _, tt := range tests {
		if got := BinSearchX(buf, tt.x); got != tt.want {
			t.Errorf("BinSearchX(%v) = %d, want %d", tt.x, got, tt.want)
		}
	}
}

func TestBinSearchXSinglePair(t *testing.T) {
	buf := []float64{3, 7}
	for _, x := range []float64{-1, 3, 99} {
		if got := BinSearchX(buf, x); got != 0 {
			t.Errorf("BinSearchX(%v) = %d, want 0", x, got)
		}
	}
}

func TestNearestNoMatch(t *testing.T) {
	tests := []struct {
		name string
		buf  []float64
		x    float64
	}{
		{"nil", nil, 0},
		{"empty", []float64{}, 0},
		{"lone x", []float64{1}, 1},
		{"nan query", tenPairs(), math.NaN()},
	}
	for _, tt := range tests {
		if _, ok := Nearest(tt.buf, tt.x); ok {
			t.Errorf("%s: Nearest reported a match", tt.name)
		}
	}
}

func TestNearestIgnoresTrailingValue(t *testing.T) {
	buf := append(tenPairs(), 500)
	idx, ok := Nearest(buf, 1000)
	if !ok || idx != 18 {
		t.Errorf("Nearest = (%d, %v), want (18, true)", idx, ok)
	}
}

func TestNearestInWindow(t *testing.T) {
	buf := []float64{
		0, 0,
		0.1, 0.1,
		0.2, math.NaN(),
		0.3, 0.3,
		0.4, 5,
	}
	tests := []struct {
		name      string
		gx, gy, r float64
		wantOK    bool
		wantIdx   int
		wantX     float64
		wantY     float64
	}{
		{"exact point", 0.1, 0.1, 0.05, true, 2, 0.1, 0.1},
		{"closest of two", 0.14, 0.12, 0.1, true, 2, 0.1, 0.1},
		{"gap skipped", 0.26, 0.28, 0.11, true, 6, 0.3, 0.3},
		{"too far in y", 0.4, 0, 0.2, false, 0, 0, 0},
		{"left of buffer", -3, 0, 0.1, false, 0, 0, 0},
		{"right of buffer", 3, 5, 0.1, false, 0, 0, 0},
		{"zero radius", 0.1, 0.1, 0, false, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := NearestInWindow(buf, tt.gx, tt.gy, tt.r)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v (match %+v)", ok, tt.wantOK, m)
			}
			if !ok {
				return
			}
			if m.Index != tt.wantIdx || m.X != tt.wantX || m.Y != tt.wantY {
				t.Errorf("match = %+v, want index %d at (%v, %v)", m, tt.wantIdx, tt.wantX, tt.wantY)
			}
			if m.DistSq >= tt.r*tt.r {
				t.Errorf("DistSq %v not below radius² %v", m.DistSq, tt.r*tt.r)
			}
		})
	}
}

func TestAt(t *testing.T) {
	buf := tenPairs()
	if x, y, ok := At(buf, 4); !ok || x != 20 || y != -1 {
		t.Errorf("At(4) = (%v, %v, %v)", x, y, ok)
	}
	for _, idx := range []int{-2, 1, 20} {
		if _, _, ok := At(buf, idx); ok {
			t.Errorf("At(%d) reported ok", idx)
		}
	}
}

func TestNearestLinear(t *testing.T) {
	// a closed square, not x-sorted
	buf := []float64{0, 0, 1, 0, 1, 1, 0, 1, 0, 0, math.NaN(), 3}
	m, ok := NearestLinear(buf, 0.9, 0.95, 0.2)
	if !ok || m.X != 1 || m.Y != 1 || m.Index != 4 {
		t.Errorf("NearestLinear = %+v, %v; want (1, 1) at index 4", m, ok)
	}
	if _, ok := NearestLinear(buf, 0.5, 0.5, 0.2); ok {
		t.Error("NearestLinear matched the center of the square")
	}
	if _, ok := NearestLinear(buf, 0, 0, -1); ok {
		t.Error("NearestLinear matched with a negative radius")
	}
}
