package preprocessing

import (
	"math"
	"testing"

	"github.com/YuminosukeSato/qfs/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

func TestParseBinningMethod(t *testing.T) {
	tests := []struct {
		in      string
		want    BinningMethod
		wantErr bool
	}{
		{in: "equal", want: EqualWidth},
		{in: "EQUAL", want: EqualWidth},
		{in: "Quantile", want: Quantile},
		{in: "kmeans", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBinningMethod(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseBinningMethod(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, errors.ErrUnsupportedMethod) {
					t.Errorf("expected ErrUnsupportedMethod, got %v", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseBinningMethod(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestBinEdges(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		bins   int
		method BinningMethod
		want   []float64
	}{
		{
			name:   "equal width excludes maximum",
			values: []float64{0, 10, 5},
			bins:   5,
			method: EqualWidth,
			want:   []float64{0, 2, 4, 6, 8},
		},
		{
			name:   "equal width single bin",
			values: []float64{3, 7},
			bins:   1,
			method: EqualWidth,
			want:   []float64{3},
		},
		{
			name:   "quantile on evenly spaced data",
			values: []float64{4, 0, 3, 1, 2},
			bins:   4,
			method: Quantile,
			want:   []float64{0, 1, 2, 3},
		},
		{
			name:   "quantile interpolates",
			values: []float64{0, 10},
			bins:   4,
			method: Quantile,
			want:   []float64{0, 2.5, 5, 7.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BinEdges(tt.values, tt.bins, tt.method)
			if err != nil {
				t.Fatalf("BinEdges() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("BinEdges() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-12 {
					t.Errorf("edge %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBinEdgesErrors(t *testing.T) {
	if _, err := BinEdges([]float64{1, 2}, 0, EqualWidth); !errors.Is(err, errors.ErrInvalidConfiguration) {
		t.Errorf("bins=0: expected ErrInvalidConfiguration, got %v", err)
	}
	if _, err := BinEdges(nil, 3, EqualWidth); !errors.Is(err, errors.ErrEmptyData) {
		t.Errorf("empty: expected ErrEmptyData, got %v", err)
	}
	if _, err := BinEdges([]float64{1}, 3, BinningMethod("median")); !errors.Is(err, errors.ErrUnsupportedMethod) {
		t.Errorf("unknown method: expected ErrUnsupportedMethod, got %v", err)
	}
}

func TestBinEdgesQuantileProbabilityRounding(t *testing.T) {
	values := make([]float64, 11)
	for i := range values {
		values[i] = float64(i)
	}

	edges, err := BinEdges(values, 10, Quantile)
	if err != nil {
		t.Fatalf("BinEdges() error = %v", err)
	}

	// 3*(1/10) = 0.30000000000000004, so the edge lies just above 3.
	if edges[3] <= 3 {
		t.Errorf("edges[3] = %v, want slightly above 3", edges[3])
	}
	if got := Digitize(3, edges); got != 2 {
		t.Errorf("Digitize(3) = %d, want 2", got)
	}
	if edges[0] != 0 || edges[5] != 5 {
		t.Errorf("edges[0], edges[5] = %v, %v, want 0, 5", edges[0], edges[5])
	}
}

func TestDigitize(t *testing.T) {
	edges := []float64{0, 2, 4, 6, 8}
	tests := []struct {
		v    float64
		want int
	}{
		{v: -1, want: -1},
		{v: 0, want: 0},
		{v: 1.99, want: 0},
		{v: 2, want: 1},
		{v: 7.5, want: 3},
		{v: 8, want: 4},
		{v: 10, want: 4},
	}
	for _, tt := range tests {
		if got := Digitize(tt.v, edges); got != tt.want {
			t.Errorf("Digitize(%v) = %d, want %d", tt.v, got, tt.want)
		}
	}

	// duplicated edges from constant data put every value in the last bin
	if got := Digitize(5, []float64{5, 5, 5}); got != 2 {
		t.Errorf("Digitize on constant edges = %d, want 2", got)
	}
}

func TestDiscretizeVector(t *testing.T) {
	x := mat.NewVecDense(6, []float64{0, 1, 2.5, 5, 7.5, 10})

	codes, err := DiscretizeVector(x, 4, "equal")
	if err != nil {
		t.Fatalf("DiscretizeVector() error = %v", err)
	}
	want := []float64{0, 0, 1, 2, 3, 3}
	for i, w := range want {
		if codes.AtVec(i) != w {
			t.Errorf("code %d = %v, want %v", i, codes.AtVec(i), w)
		}
	}

	if _, err := DiscretizeVector(x, 4, "histogram"); !errors.Is(err, errors.ErrUnsupportedMethod) {
		t.Errorf("expected ErrUnsupportedMethod, got %v", err)
	}
}

func TestDiscretizeSharedMatchesVector(t *testing.T) {
	// 各列は同じ値の並べ替えなので、最小値・最大値は全列で共通
	col := []float64{0.3, 1.7, 4.2, 2.9, 0.0, 5.0, 3.3, 4.9}
	perm := []int{7, 6, 5, 4, 3, 2, 1, 0}

	X := mat.NewDense(len(col), 2, nil)
	for i := range col {
		X.Set(i, 0, col[i])
		X.Set(i, 1, col[perm[i]])
	}

	shared, err := Discretize(X, 5, "equal", true)
	if err != nil {
		t.Fatalf("Discretize() error = %v", err)
	}
	single, err := DiscretizeVector(mat.NewVecDense(len(col), col), 5, "equal")
	if err != nil {
		t.Fatalf("DiscretizeVector() error = %v", err)
	}

	for i := range col {
		if shared.At(i, 0) != single.AtVec(i) {
			t.Errorf("row %d: shared code %v, vector code %v", i, shared.At(i, 0), single.AtVec(i))
		}
		if shared.At(i, 1) != single.AtVec(perm[i]) {
			t.Errorf("row %d col 1: shared code %v, vector code %v", i, shared.At(i, 1), single.AtVec(perm[i]))
		}
	}
}

func TestDiscretizePerColumn(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		0, 100,
		1, 200,
		2, 300,
		3, 400,
	})

	perColumn, err := Discretize(X, 2, "equal", false)
	if err != nil {
		t.Fatalf("Discretize() error = %v", err)
	}
	sharedCodes, err := Discretize(X, 2, "EQUAL", true)
	if err != nil {
		t.Fatalf("Discretize() error = %v", err)
	}

	wantPerColumn := []float64{0, 0, 1, 1}
	for i, w := range wantPerColumn {
		if perColumn.At(i, 0) != w || perColumn.At(i, 1) != w {
			t.Errorf("row %d: per-column codes = (%v, %v), want %v", i, perColumn.At(i, 0), perColumn.At(i, 1), w)
		}
	}
	// 共有端点 [0, 200): 左列は全てビン0、右列は 100 のみビン0
	if sharedCodes.At(3, 0) != 0 || sharedCodes.At(0, 1) != 0 || sharedCodes.At(1, 1) != 1 {
		t.Errorf("unexpected shared codes: %v", mat.Formatted(sharedCodes))
	}
}

func TestDiscretizeQuantile(t *testing.T) {
	X := mat.NewDense(8, 1, []float64{1, 2, 3, 4, 5, 6, 7, 8})
	codes, err := Discretize(X, 4, "quantile", true)
	if err != nil {
		t.Fatalf("Discretize() error = %v", err)
	}
	want := []float64{0, 0, 1, 1, 2, 2, 3, 3}
	for i, w := range want {
		if codes.At(i, 0) != w {
			t.Errorf("row %d = %v, want %v", i, codes.At(i, 0), w)
		}
	}
}

func TestKBinsDiscretizer(t *testing.T) {
	X := mat.NewDense(5, 2, []float64{
		0, 10,
		1, 20,
		2, 30,
		3, 40,
		4, 50,
	})

	disc := NewKBinsDiscretizer(WithBins(2), WithSharedBins(false))
	if disc.Method != "equal" {
		t.Errorf("default method = %q, want equal", disc.Method)
	}

	if _, err := disc.Transform(X); err == nil {
		t.Fatal("expected NotFittedError before Fit")
	}

	got, err := disc.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}
	want, err := Discretize(X, 2, "equal", false)
	if err != nil {
		t.Fatalf("Discretize() error = %v", err)
	}
	if !mat.Equal(got, want) {
		t.Errorf("FitTransform() = %v, want %v", mat.Formatted(got), mat.Formatted(want))
	}

	// 学習範囲外の値は端のビンに入る
	unseen := mat.NewDense(1, 2, []float64{-5, 99})
	out, err := disc.Transform(unseen)
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if out.At(0, 0) != 0 || out.At(0, 1) != 1 {
		t.Errorf("Transform(unseen) = %v, want [0 1]", mat.Formatted(out))
	}

	if _, err := disc.Transform(mat.NewDense(1, 3, nil)); !errors.Is(err, errors.ErrShapeMismatch) {
		t.Errorf("expected ErrShapeMismatch, got %v", err)
	}

	edges := disc.BinEdges()
	if len(edges) != 2 || len(edges[0]) != 2 {
		t.Fatalf("BinEdges() = %v", edges)
	}
	edges[0][0] = 1000
	if disc.BinEdges()[0][0] == 1000 {
		t.Error("BinEdges() must return a copy")
	}
}

func TestKBinsDiscretizerUnsupportedMethod(t *testing.T) {
	disc := NewKBinsDiscretizer(WithMethod("uniform"))
	err := disc.Fit(mat.NewDense(2, 1, []float64{0, 1}))
	if !errors.Is(err, errors.ErrUnsupportedMethod) {
		t.Errorf("expected ErrUnsupportedMethod, got %v", err)
	}
	if disc.IsFitted() {
		t.Error("discretizer must stay unfitted after a failed Fit")
	}
}
