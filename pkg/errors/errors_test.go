package errors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name     string
		op       string
		kind     string
		err      error
		wantMsg  string
		hasStack bool
	}{
		{
			name:     "with original error",
			op:       "Fit",
			kind:     "invalid input",
			err:      fmt.Errorf("test error"),
			wantMsg:  "mgfs: Fit: invalid input: test error",
			hasStack: true,
		},
		{
			name:     "without original error",
			op:       "Transform",
			kind:     "not fitted",
			err:      nil,
			wantMsg:  "mgfs: Transform: not fitted",
			hasStack: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.kind, tt.err)

			// 基本的なエラーメッセージの確認
			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			// スタックトレースの存在確認
			if tt.hasStack {
				formatted := fmt.Sprintf("%+v", err)
				if !strings.Contains(formatted, "errors_test.go") {
					t.Error("Expected stack trace to contain test file name")
				}
			}

			var modelErr *ModelError
			if !As(err, &modelErr) {
				t.Error("Error should be castable to *ModelError")
			}
		})
	}
}

func TestNewDimensionError(t *testing.T) {
	tests := []struct {
		name string
		axis int
		want string
	}{
		{"rows", 0, "mgfs: MGFS: dimension mismatch on axis 0 (rows). Expected 3, got 4"},
		{"features", 1, "mgfs: MGFS: dimension mismatch on axis 1 (features). Expected 3, got 4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDimensionError("MGFS", 3, 4, tt.axis)
			if err.Error() != tt.want {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.want)
			}

			var dimErr *DimensionError
			if !As(err, &dimErr) {
				t.Fatal("Error should be castable to *DimensionError")
			}
			if dimErr.Axis != tt.axis {
				t.Errorf("Axis = %d, want %d", dimErr.Axis, tt.axis)
			}
		})
	}
}

func TestNewDegenerateInputError(t *testing.T) {
	tests := []struct {
		name    string
		kind    string
		source  string
		wantMsg string
	}{
		{
			name:    "zero variance",
			kind:    DegenerateZeroVariance,
			source:  "X",
			wantMsg: "mgfs: CorrelationAffinityMatrix: column 2 of X has zero variance; correlation is undefined",
		},
		{
			name:    "zero degree",
			kind:    DegenerateZeroDegree,
			source:  "M",
			wantMsg: "mgfs: CorrelationAffinityMatrix: node 2 of M has zero total weight; transition probabilities are undefined",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDegenerateInputError("CorrelationAffinityMatrix", tt.kind, tt.source, 2)
			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			var degErr *DegenerateInputError
			if !As(err, &degErr) {
				t.Fatal("Error should be castable to *DegenerateInputError")
			}
			if degErr.Index != 2 || degErr.Kind != tt.kind {
				t.Errorf("unexpected fields: %+v", degErr)
			}
		})
	}
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("MGFSSelector", "Transform")

	want := "mgfs: MGFSSelector: this model is not fitted yet. Call Fit() before using Transform()"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var notFittedErr *NotFittedError
	if !As(err, &notFittedErr) {
		t.Error("Error should be castable to *NotFittedError")
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("beta", "must be in the open interval (0, 1)", 1.5)

	want := "mgfs: validation failed for parameter 'beta': must be in the open interval (0, 1) (got: 1.5)"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var valErr *ValidationError
	if !As(err, &valErr) {
		t.Error("Error should be castable to *ValidationError")
	}
}

func TestNewValueError(t *testing.T) {
	err := NewValueError("Covariance", "empty input")

	if err.Error() != "mgfs: Covariance: empty input" {
		t.Errorf("Error() = %v", err.Error())
	}

	var valErr *ValueError
	if !As(err, &valErr) {
		t.Error("Error should be castable to *ValueError")
	}
}

func TestNewConvergenceWarning(t *testing.T) {
	warn := NewConvergenceWarning("WeightedStationaryRank", 100, "L1 step 3.2e-05 above epsilon 1e-08")

	want := "WeightedStationaryRank failed to converge after 100 iterations: L1 step 3.2e-05 above epsilon 1e-08"
	if warn.Error() != want {
		t.Errorf("Error() = %v, want %v", warn.Error(), want)
	}

	var convWarn *ConvergenceWarning
	if !As(warn, &convWarn) {
		t.Error("Warning should be castable to *ConvergenceWarning")
	}
}

func TestWarnHandlers(t *testing.T) {
	defer SetWarningHandler(nil)
	defer SetZerologWarnFunc(nil)

	var got []error
	SetWarningHandler(func(w error) { got = append(got, w) })

	Warn(NewConvergenceWarning("WeightedStationaryRank", 5, ""))
	if len(got) != 1 {
		t.Fatalf("expected 1 warning from fallback handler, got %d", len(got))
	}

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	SetZerologWarnFunc(func(w error) {
		if m, ok := w.(zerolog.LogObjectMarshaler); ok {
			logger.Warn().EmbedObject(m).Msg(w.Error())
			return
		}
		logger.Warn().Msg(w.Error())
	})

	Warn(NewConvergenceWarning("WeightedStationaryRank", 7, "cap reached"))
	if len(got) != 1 {
		t.Error("zerolog hook should take precedence over the fallback handler")
	}

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse zerolog output %q: %v", buf.String(), err)
	}
	if entry["type"] != "ConvergenceWarning" || entry["iterations"] != 7.0 {
		t.Errorf("unexpected structured warning: %v", entry)
	}
}

func TestNumericalChecks(t *testing.T) {
	if err := CheckNumericalStability("rank", []float64{0.5, 0.5}, 3); err != nil {
		t.Errorf("finite values should pass, got %v", err)
	}

	nan := 0.0
	nan = nan / nan
	err := CheckNumericalStability("rank", []float64{0.5, nan}, 3)
	var numErr *NumericalInstabilityError
	if !As(err, &numErr) {
		t.Fatalf("expected NumericalInstabilityError, got %v", err)
	}
	if numErr.Iteration != 3 {
		t.Errorf("Iteration = %d, want 3", numErr.Iteration)
	}

	if IsFinite(nan) {
		t.Error("IsFinite(NaN) should be false")
	}

	if err := CheckNumericalStability("rank", []float64{math.Inf(-1)}, 0); err == nil {
		t.Error("-Inf should be reported")
	}
}

type gridMatrix [][]float64

func (g gridMatrix) At(i, j int) float64 { return g[i][j] }

func TestCheckMatrixReportsInf(t *testing.T) {
	if err := CheckMatrix("distance", gridMatrix{{0, 1}, {1, 0}}, 2, 2, 0); err != nil {
		t.Errorf("finite matrix should pass, got %v", err)
	}

	err := CheckMatrix("distance", gridMatrix{{0, math.Inf(1)}, {1, 0}}, 2, 2, 0)
	var numErr *NumericalInstabilityError
	if !As(err, &numErr) {
		t.Fatalf("expected NumericalInstabilityError, got %v", err)
	}
}

func TestWrapAndIs(t *testing.T) {
	wrapped := Wrap(ErrEmptyData, "in MGFSSelector.Fit")

	if !Is(wrapped, ErrEmptyData) {
		t.Error("Expected Is(wrapped, ErrEmptyData) to be true")
	}

	if !strings.Contains(wrapped.Error(), "in MGFSSelector.Fit") {
		t.Error("Expected wrapped error to contain wrapping message")
	}
}

func TestWrapf(t *testing.T) {
	wrapped := Wrapf(ErrEmptyData, "in %s: expected %d, got %d", "Transform", 10, 5)

	if !Is(wrapped, ErrEmptyData) {
		t.Error("Expected Is(wrapped, ErrEmptyData) to be true")
	}

	expectedMsg := "in Transform: expected 10, got 5"
	if !strings.Contains(wrapped.Error(), expectedMsg) {
		t.Errorf("Expected wrapped error to contain %q", expectedMsg)
	}
}

func TestErrorChaining(t *testing.T) {
	err1 := NewDimensionError("MGFS", 2, 3, 1)
	err2 := Wrap(err1, "wrapped once")
	err3 := NewModelError("MGFSSelector.Fit", "ranking failed", err2)

	if !strings.Contains(err3.Error(), "dimension mismatch") {
		t.Error("Expected error chain to contain base error")
	}

	var dimErr *DimensionError
	if !As(err3, &dimErr) {
		t.Error("Expected DimensionError to be reachable through the chain")
	}

	formatted := fmt.Sprintf("%+v", err3)
	if !strings.Contains(formatted, "errors_test.go") {
		t.Error("Expected detailed error to contain stack trace")
	}
}
