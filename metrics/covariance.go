package metrics

import (
	"math"

	"github.com/YuminosukeSato/mgfs/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Covariance は2つの数列の標本共分散を計算する
//
// パラメータ:
//   - x, y: 同じ長さの数列
//   - bias: trueなら n で割る（母共分散）、falseなら n-1 で割る（不偏推定量）
//
// 戻り値:
//   - float64: 共分散
//   - error: 長さが異なる場合は DimensionError、空の場合は ValueError
//
// bias=false かつ n == 1 の場合は 0/0 となり NaN を返す（IEEE 754 の規則どおり）。
func Covariance(x, y []float64, bias bool) (float64, error) {
	n := len(x)
	if len(y) != n {
		return 0, errors.NewDimensionError("Covariance", n, len(y), 0)
	}
	if n == 0 {
		return 0, errors.NewValueError("Covariance", "empty input")
	}
	return covariance(x, y, bias), nil
}

func covariance(x, y []float64, bias bool) float64 {
	xMean := stat.Mean(x, nil)
	yMean := stat.Mean(y, nil)

	// Σ(x - x̄)(y - ȳ)
	var sum float64
	for i := range x {
		sum += (x[i] - xMean) * (y[i] - yMean)
	}

	denom := float64(len(x) - 1)
	if bias {
		denom = float64(len(x))
	}
	return sum / denom
}

// PearsonCorrelation はピアソン相関係数を計算する
//
// 分子の共分散は bias に従うが、分母の分散は常に不偏分散（n-1）を使う。
// 分散が0の列では NaN または ±Inf を返す。
func PearsonCorrelation(x, y []float64, bias bool) (float64, error) {
	cov, err := Covariance(x, y, bias)
	if err != nil {
		return 0, err
	}
	return cov / math.Sqrt(stat.Variance(x, nil)*stat.Variance(y, nil)), nil
}

// ConstantColumns は分散が0（全要素が等しい）の列番号を返す
func ConstantColumns(X mat.Matrix) []int {
	r, c := X.Dims()
	var constant []int
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		if floats.Max(col) == floats.Min(col) {
			constant = append(constant, j)
		}
	}
	return constant
}
