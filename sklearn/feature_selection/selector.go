package feature_selection

import (
	"fmt"
	"io"
	"time"

	"github.com/YuminosukeSato/mgfs/centrality"
	"github.com/YuminosukeSato/mgfs/core/model"
	"github.com/YuminosukeSato/mgfs/metrics"
	"github.com/YuminosukeSato/mgfs/pkg/errors"
	"github.com/YuminosukeSato/mgfs/pkg/log"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/mat"
)

// MGFSSelector はMGFSスコアで特徴量を順位付けし、上位k個を選択するscikit-learn互換の変換器
type MGFSSelector struct {
	model.BaseEstimator

	// Hyperparameters
	beta       float64
	epsilon    float64
	bias       bool
	maxIter    int
	strict     bool
	zeroDegree centrality.ZeroDegreePolicy
	k          int

	logger log.Logger

	// Fitted state
	scores_    *mat.VecDense
	ranking_   []int
	affinity_  *mat.Dense
	distance_  *mat.Dense
	nFeatures_ int
	nIter_     int
	converged_ bool
}

// NewMGFSSelector は新しいMGFSSelectorを作成する
//
// デフォルト: beta=0.85, epsilon=1e-8, bias=false, max_iter=0（無制限）,
// strict=false, k=0（全特徴量）
//
// 使用例:
//
//	selector := feature_selection.NewMGFSSelector(feature_selection.WithK(10))
//	err := selector.Fit(X, Y)
//	XSelected, err := selector.Transform(X)
func NewMGFSSelector(opts ...Option) *MGFSSelector {
	s := &MGFSSelector{
		beta:       centrality.DefaultBeta,
		epsilon:    centrality.DefaultEpsilon,
		zeroDegree: centrality.ZeroDegreePropagate,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MGFSSelector) rankOptions() []centrality.Option {
	policy := s.zeroDegree
	if s.strict {
		policy = centrality.ZeroDegreeError
	}
	opts := []centrality.Option{
		centrality.WithBeta(s.beta),
		centrality.WithEpsilon(s.epsilon),
		centrality.WithMaxIter(s.maxIter),
		centrality.WithZeroDegree(policy),
	}
	if s.logger != nil {
		opts = append(opts, centrality.WithLogger(s.logger))
	}
	return opts
}

// Validate はハイパーパラメータを検証する
func (s *MGFSSelector) Validate() error {
	return s.validate()
}

func (s *MGFSSelector) validate() error {
	if err := centrality.Validate(s.rankOptions()...); err != nil {
		return err
	}
	if s.k < 0 {
		return errors.NewValidationError("k", "must be non-negative", s.k)
	}
	return nil
}

// Fit はXの各特徴量のMGFSスコアを計算する
//
// パラメータ:
//   - X: 特徴量行列 (n_samples × n_features)
//   - Y: ターゲット行列 (n_samples × n_features)。列数はXと同じでなければならない
//
// 戻り値:
//   - error: 次元不一致、パラメータ不正、strictモードでの退化入力など
func (s *MGFSSelector) Fit(X, Y mat.Matrix) (err error) {
	defer errors.Recover(&err, "MGFSSelector.Fit")
	s.clearFitted()

	if err := s.validate(); err != nil {
		return err
	}

	rx, cx := X.Dims()
	ry, cy := Y.Dims()
	if rx == 0 || cx == 0 || ry == 0 || cy == 0 {
		return errors.NewValueError("MGFS", "empty input")
	}
	if rx != ry {
		return errors.NewDimensionError("MGFS", rx, ry, 0)
	}
	// 距離行列と順位付けは正方のアフィニティ行列を前提とする
	if cx != cy {
		return errors.NewDimensionError("MGFS", cx, cy, 1)
	}

	logger := s.logger
	if logger == nil {
		logger = log.GetLoggerWithName("feature_selection")
	}
	logger = logger.With(log.ModelNameKey, "MGFSSelector", log.OperationKey, log.OperationFit)
	start := time.Now()

	if s.strict {
		if err := checkConstantColumns(X, "X"); err != nil {
			return err
		}
		if err := checkConstantColumns(Y, "Y"); err != nil {
			return err
		}
	}

	affinity, err := metrics.CorrelationAffinityMatrix(X, Y, s.bias)
	if err != nil {
		return err
	}
	if s.strict {
		if err := errors.CheckMatrix("correlation_affinity_matrix", affinity, cx, cy, 0); err != nil {
			return err
		}
	}

	distance, err := metrics.EuclideanDistanceMatrix(affinity)
	if err != nil {
		return err
	}

	res, err := centrality.Rank(distance, s.rankOptions()...)
	if err != nil {
		return err
	}
	scores := res.Scores.RawVector().Data
	if s.strict {
		if err := errors.CheckNumericalStability("weighted_stationary_rank", scores, res.Iterations); err != nil {
			return err
		}
	}

	s.affinity_ = affinity
	s.distance_ = distance
	s.scores_ = res.Scores
	s.ranking_ = ArgsortDescending(scores)
	s.nFeatures_ = cx
	s.nIter_ = res.Iterations
	s.converged_ = res.Converged
	s.SetFitted()

	logger.Info("MGFS ranking completed",
		log.SamplesKey, rx,
		log.FeaturesKey, cx,
		log.IterationKey, res.Iterations,
		log.ConvergedKey, res.Converged,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

func (s *MGFSSelector) clearFitted() {
	s.Reset()
	s.scores_, s.ranking_, s.affinity_, s.distance_ = nil, nil, nil, nil
	s.nFeatures_, s.nIter_, s.converged_ = 0, 0, false
}

func checkConstantColumns(m mat.Matrix, source string) error {
	if cols := metrics.ConstantColumns(m); len(cols) > 0 {
		return errors.NewDegenerateInputError("MGFS", errors.DegenerateZeroVariance, source, cols[0])
	}
	return nil
}

// selectedK は実際に選択する特徴量の数を返す
func (s *MGFSSelector) selectedK() int {
	if s.k == 0 || s.k > s.nFeatures_ {
		return s.nFeatures_
	}
	return s.k
}

// GetSupport は選択された特徴量のマスクを返す
func (s *MGFSSelector) GetSupport() ([]bool, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("MGFSSelector", "GetSupport")
	}
	support := make([]bool, s.nFeatures_)
	for _, idx := range s.ranking_[:s.selectedK()] {
		support[idx] = true
	}
	return support, nil
}

// Transform は上位k個の特徴量の列を元の列順で返す
//
// パラメータ:
//   - X: 変換するデータ (n_samples × n_features)
//
// 戻り値:
//   - mat.Matrix: 選択された列のみの行列 (n_samples × k)
//   - error: 未学習、または列数が学習時と異なる場合
func (s *MGFSSelector) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("MGFSSelector", "Transform")
	}

	r, c := X.Dims()
	if c != s.nFeatures_ {
		return nil, errors.NewDimensionError("MGFSSelector.Transform", s.nFeatures_, c, 1)
	}

	support, _ := s.GetSupport()
	result := mat.NewDense(r, s.selectedK(), nil)
	col := make([]float64, r)
	out := 0
	for j, keep := range support {
		if !keep {
			continue
		}
		result.SetCol(out, mat.Col(col, j, X))
		out++
	}
	return result, nil
}

// FitTransform は学習と変換を同時に実行する
func (s *MGFSSelector) FitTransform(X, Y mat.Matrix) (mat.Matrix, error) {
	if err := s.Fit(X, Y); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// Scores は各特徴量のスコアのコピーを返す（未学習の場合はnil）
func (s *MGFSSelector) Scores() *mat.VecDense {
	if s.scores_ == nil {
		return nil
	}
	return mat.VecDenseCopyOf(s.scores_)
}

// Ranking はスコアの降順に並べた特徴量番号のコピーを返す
func (s *MGFSSelector) Ranking() []int {
	if s.ranking_ == nil {
		return nil
	}
	return append([]int(nil), s.ranking_...)
}

// AffinityMatrix は学習時のアフィニティ行列を返す
func (s *MGFSSelector) AffinityMatrix() *mat.Dense {
	if s.affinity_ == nil {
		return nil
	}
	return mat.DenseCopyOf(s.affinity_)
}

// DistanceMatrix は学習時の距離行列を返す
func (s *MGFSSelector) DistanceMatrix() *mat.Dense {
	if s.distance_ == nil {
		return nil
	}
	return mat.DenseCopyOf(s.distance_)
}

// FeatureGraph は学習時の距離行列を重み付き無向グラフとして返す
func (s *MGFSSelector) FeatureGraph() (*simple.WeightedUndirectedGraph, error) {
	if !s.IsFitted() || s.distance_ == nil {
		return nil, errors.NewNotFittedError("MGFSSelector", "FeatureGraph")
	}
	return centrality.NewFeatureGraph(s.distance_)
}

// NFeatures は学習時の特徴量数を返す
func (s *MGFSSelector) NFeatures() int {
	return s.nFeatures_
}

// NIter は冪乗法の反復回数を返す
func (s *MGFSSelector) NIter() int {
	return s.nIter_
}

// Converged は冪乗法がepsilon未満で収束したかを返す
func (s *MGFSSelector) Converged() bool {
	return s.converged_
}

// GetParams はハイパーパラメータを取得する
func (s *MGFSSelector) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"beta":        s.beta,
		"epsilon":     s.epsilon,
		"bias":        s.bias,
		"max_iter":    s.maxIter,
		"strict":      s.strict,
		"zero_degree": s.zeroDegree.String(),
		"k":           s.k,
	}
}

// SetParams はハイパーパラメータを設定する。値は検証され、不正な場合は変更されない
func (s *MGFSSelector) SetParams(params map[string]interface{}) error {
	next := *s
	for key, value := range params {
		var ok bool
		switch key {
		case "beta":
			next.beta, ok = toFloat(value)
		case "epsilon":
			next.epsilon, ok = toFloat(value)
		case "bias":
			next.bias, ok = value.(bool)
		case "strict":
			next.strict, ok = value.(bool)
		case "max_iter":
			next.maxIter, ok = value.(int)
		case "k":
			next.k, ok = value.(int)
		case "zero_degree":
			var name string
			if name, ok = value.(string); ok {
				p, err := centrality.ParseZeroDegreePolicy(name)
				if err != nil {
					return err
				}
				next.zeroDegree = p
			}
		default:
			return errors.NewValidationError(key, "unknown parameter", value)
		}
		if !ok {
			return errors.NewValidationError(key, fmt.Sprintf("unexpected type %T", value), value)
		}
	}
	if err := next.validate(); err != nil {
		return err
	}

	s.beta, s.epsilon, s.bias, s.strict = next.beta, next.epsilon, next.bias, next.strict
	s.maxIter, s.k, s.zeroDegree = next.maxIter, next.k, next.zeroDegree
	return nil
}

func toFloat(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	default:
		return 0, false
	}
}

// selectorState is the gob representation of a fitted selector.
type selectorState struct {
	Beta       float64
	Epsilon    float64
	Bias       bool
	MaxIter    int
	Strict     bool
	ZeroDegree int
	K          int

	Fitted    bool
	Scores    []float64
	Ranking   []int
	Affinity  []float64
	Distance  []float64
	NFeatures int
	NIter     int
	Converged bool
}

// Save はハイパーパラメータと学習結果をgob形式でwに書き込む
func (s *MGFSSelector) Save(w io.Writer) error {
	state := selectorState{
		Beta:       s.beta,
		Epsilon:    s.epsilon,
		Bias:       s.bias,
		MaxIter:    s.maxIter,
		Strict:     s.strict,
		ZeroDegree: int(s.zeroDegree),
		K:          s.k,
		Fitted:     s.IsFitted(),
		Ranking:    s.ranking_,
		NFeatures:  s.nFeatures_,
		NIter:      s.nIter_,
		Converged:  s.converged_,
	}
	if s.IsFitted() {
		state.Scores = s.scores_.RawVector().Data
		state.Affinity = s.affinity_.RawMatrix().Data
		state.Distance = s.distance_.RawMatrix().Data
	}
	return model.SaveModelToWriter(&state, w)
}

// Load はSaveで書き込まれた状態を読み込む
//
// 状態が壊れている場合はValueErrorを返し、セレクタは変更しない
func (s *MGFSSelector) Load(r io.Reader) error {
	var state selectorState
	if err := model.LoadModelFromReader(&state, r); err != nil {
		return errors.NewModelError("MGFSSelector.Load", "corrupted state", err)
	}
	if err := checkState(&state); err != nil {
		return err
	}

	s.beta, s.epsilon, s.bias = state.Beta, state.Epsilon, state.Bias
	s.maxIter, s.strict, s.k = state.MaxIter, state.Strict, state.K
	s.zeroDegree = centrality.ZeroDegreePolicy(state.ZeroDegree)

	s.clearFitted()
	if !state.Fitted {
		return nil
	}

	n := state.NFeatures
	s.scores_ = mat.NewVecDense(n, state.Scores)
	s.ranking_ = state.Ranking
	s.affinity_ = mat.NewDense(n, n, state.Affinity)
	s.distance_ = mat.NewDense(n, n, state.Distance)
	s.nFeatures_ = n
	s.nIter_ = state.NIter
	s.converged_ = state.Converged
	s.SetFitted()
	return nil
}

// checkState rejects decoded states that would panic or mislead once loaded.
func checkState(state *selectorState) error {
	const op = "MGFSSelector.Load"

	params := MGFSSelector{
		beta:       state.Beta,
		epsilon:    state.Epsilon,
		maxIter:    state.MaxIter,
		zeroDegree: centrality.ZeroDegreePolicy(state.ZeroDegree),
		k:          state.K,
	}
	if err := params.validate(); err != nil {
		return errors.NewValueError(op, "corrupted state: "+err.Error())
	}
	if !state.Fitted {
		return nil
	}

	n := state.NFeatures
	if n <= 0 {
		return errors.NewValueError(op, "corrupted state: fitted selector has no features")
	}
	if len(state.Scores) != n || len(state.Ranking) != n ||
		len(state.Affinity) != n*n || len(state.Distance) != n*n {
		return errors.NewValueError(op, "corrupted state: inconsistent feature count")
	}
	seen := make([]bool, n)
	for _, idx := range state.Ranking {
		if idx < 0 || idx >= n || seen[idx] {
			return errors.NewValueError(op, "corrupted state: ranking is not a permutation of the features")
		}
		seen[idx] = true
	}
	return nil
}

// String はセレクタの文字列表現を返す
func (s *MGFSSelector) String() string {
	if !s.IsFitted() {
		return fmt.Sprintf("MGFSSelector(beta=%g, epsilon=%g, bias=%t, k=%d)", s.beta, s.epsilon, s.bias, s.k)
	}
	return fmt.Sprintf("MGFSSelector(beta=%g, epsilon=%g, bias=%t, k=%d, n_features=%d)",
		s.beta, s.epsilon, s.bias, s.k, s.nFeatures_)
}

var _ model.SupervisedTransformer = (*MGFSSelector)(nil)
var _ model.ParameterGetter = (*MGFSSelector)(nil)
var _ model.ParameterSetter = (*MGFSSelector)(nil)
