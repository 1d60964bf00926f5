package metrics

import (
	"math"

	"github.com/YuminosukeSato/mgfs/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// CorrelationAffinityMatrix は X の各列と Y の各列の「1 - ピアソン相関」を並べた行列を返す
//
// 結果の形状は (X の列数) × (Y の列数) で、要素 [i][j] は
//
//	1 - Covariance(X[:,i], Y[:,j], bias) / sqrt(Var(X[:,i]) * Var(Y[:,j]))
//
// となる。分散は bias に関係なく常に不偏分散を使う。
// 同一の列は 0、無相関は 1、逆相関は 2 に近づく。
// 分散0の列を含む組み合わせは NaN/Inf になり、そのまま伝播する。
func CorrelationAffinityMatrix(X, Y mat.Matrix, bias bool) (*mat.Dense, error) {
	rx, cx := X.Dims()
	ry, cy := Y.Dims()

	if rx == 0 || cx == 0 || cy == 0 {
		return nil, errors.NewValueError("CorrelationAffinityMatrix", "empty matrix")
	}
	if rx != ry {
		return nil, errors.NewDimensionError("CorrelationAffinityMatrix", rx, ry, 0)
	}

	xCols, xVars := columnsWithVariance(X)
	yCols, yVars := columnsWithVariance(Y)

	result := mat.NewDense(cx, cy, nil)
	for i := 0; i < cx; i++ {
		for j := 0; j < cy; j++ {
			corr := covariance(xCols[i], yCols[j], bias) / math.Sqrt(xVars[i]*yVars[j])
			result.Set(i, j, 1-corr)
		}
	}
	return result, nil
}

// columnsWithVariance は各列のコピーと不偏分散を返す
func columnsWithVariance(m mat.Matrix) ([][]float64, []float64) {
	r, c := m.Dims()
	cols := make([][]float64, c)
	vars := make([]float64, c)
	for j := 0; j < c; j++ {
		cols[j] = mat.Col(make([]float64, r), j, m)
		vars[j] = stat.Variance(cols[j], nil)
	}
	return cols, vars
}

// EuclideanDistanceMatrix は M の全ての行の組についてユークリッド距離を計算する
//
// M が r × c のとき結果は r × r の対称行列で、有限な入力では対角成分は 0 になる。
// NaN を含む行との距離は NaN になる。
func EuclideanDistanceMatrix(M mat.Matrix) (*mat.Dense, error) {
	r, c := M.Dims()
	if r == 0 || c == 0 {
		return nil, errors.NewValueError("EuclideanDistanceMatrix", "empty matrix")
	}

	rows := make([][]float64, r)
	for i := 0; i < r; i++ {
		rows[i] = mat.Row(make([]float64, c), i, M)
	}

	result := mat.NewDense(r, r, nil)
	for i := 0; i < r; i++ {
		for j := i; j < r; j++ {
			d := floats.Distance(rows[i], rows[j], 2)
			result.Set(i, j, d)
			result.Set(j, i, d)
		}
	}
	return result, nil
}
