package surface

import (
	"image/color"
	"math"
	"testing"
)

func TestRuns(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name string
		in   []float64
		want int
	}{
		{"empty", nil, 0},
		{"single vertex", []float64{0, 0}, 0},
		{"one run", []float64{0, 0, 1, 1, 2, 2}, 1},
		{"split", []float64{0, 0, 1, 1, nan, nan, 2, 2, 3, 3}, 2},
		{"nan in x", []float64{0, 0, 1, 1, nan, 0, 2, 2, 3, 3}, 2},
		{"isolated vertex dropped", []float64{0, 0, nan, nan, 2, 2, nan, nan, 4, 4, 5, 5}, 1},
		{"leading and trailing gaps", []float64{nan, nan, 0, 0, 1, 1, nan, nan}, 1},
		{"odd length", []float64{0, 0, 1, 1, 2}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs := Runs(tt.in)
			if len(runs) != tt.want {
				t.Fatalf("len(Runs) = %d, want %d (%v)", len(runs), tt.want, runs)
			}
			for _, run := range runs {
				if len(run) < 4 || len(run)%2 != 0 {
					t.Errorf("malformed run %v", run)
				}
				for _, v := range run {
					if math.IsNaN(v) {
						t.Errorf("run %v contains NaN", run)
					}
				}
			}
		})
	}
}

func TestDashes(t *testing.T) {
	phase := 0.0
	out := Dashes(0, 0, 20, 0, &phase)

	// 20px = on 6, off 4, on 6, off 4
	want := []float64{0, 0, 6, 0, 10, 0, 16, 0}
	if len(out) != len(want) {
		t.Fatalf("Dashes = %v, want %v", out, want)
	}
	for i := range want {
		if math.Abs(out[i]-want[i]) > 1e-9 {
			t.Fatalf("Dashes = %v, want %v", out, want)
		}
	}
	if phase != 20 {
		t.Errorf("phase = %v, want 20", phase)
	}
}

func TestDashesContinueAcrossJoints(t *testing.T) {
	phase := 0.0
	first := Dashes(0, 0, 3, 0, &phase)
	second := Dashes(3, 0, 3, 10, &phase)

	if len(first) != 4 || first[2] != 3 {
		t.Fatalf("first segment dashes = %v", first)
	}
	// 3px of the first dash remain, then a 4px gap, then 3px of the next dash
	if len(second) != 8 {
		t.Fatalf("second segment dashes = %v", second)
	}
	if math.Abs(second[3]-3) > 1e-9 || math.Abs(second[5]-7) > 1e-9 {
		t.Errorf("second segment dashes = %v", second)
	}
}

func TestDashesDegenerate(t *testing.T) {
	phase := 0.0
	if out := Dashes(1, 1, 1, 1, &phase); out != nil {
		t.Errorf("zero-length segment produced %v", out)
	}
	if out := Dashes(0, 0, math.Inf(1), 0, &phase); out != nil {
		t.Errorf("infinite segment produced %d values", len(out))
	}
}

func TestStrokeWidth(t *testing.T) {
	if w := (Style{}).StrokeWidth(); w != 1 {
		t.Errorf("zero width = %v, want 1", w)
	}
	if w := (Style{Width: 3}).StrokeWidth(); w != 3 {
		t.Errorf("width = %v, want 3", w)
	}
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	var _ Raster = r
	var _ Vector = r

	r.DrawText("stale", 0, 0, 14, color.RGBA{})
	r.Clear(color.RGBA{R: 255, A: 255})
	verts := []float64{0, 0, 1, 1}
	r.DrawLineStrip(verts, Style{Width: 2})
	verts[0] = 9
	r.FillCircle(5, 5, 3, color.RGBA{})
	r.DrawText("hello", 1, 2, 10, color.RGBA{})

	ops := r.Ops()
	if len(ops) != 4 || ops[0].Kind != OpClear {
		t.Fatalf("ops = %+v", ops)
	}
	if ops[1].Vertices[0] != 0 {
		t.Error("recorder aliased the caller's vertex slice")
	}
	if texts := r.Texts(); len(texts) != 1 || texts[0] != "hello" {
		t.Errorf("Texts = %v", texts)
	}
	if w, h := r.MeasureText("hello", 10); w != 30 || h != 12.5 {
		t.Errorf("MeasureText = (%v, %v), want (30, 12.5)", w, h)
	}

	r.Reset()
	if len(r.Ops()) != 0 {
		t.Error("Reset kept ops")
	}
}
