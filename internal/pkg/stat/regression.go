// Package stat evaluates dataset transforms in-process: regressions, clustering and sort.
//
// This serves renderers which cannot run ecStat in the browser. Results follow the conventions of ecStat:
// a regression yields the fitted points sorted along x, and clustering appends the cluster index to each row.
package stat

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
	gonumstat "gonum.org/v1/gonum/stat"

	"github.com/fredbi/echartgen/pkg/model"
)

// defaultOrder is the order of a polynomial regression when none is given, as in ecStat.
const defaultOrder = 2

var (
	// ErrNotEnoughPoints is returned when there are too few points to fit a model.
	ErrNotEnoughPoints = errors.New("not enough points")

	// ErrOutOfDomain is returned when a point cannot be fitted by the model, e.g. a negative value
	// for an exponential regression.
	ErrOutOfDomain = errors.New("point out of the domain of the model")

	// ErrUnknownMethod is returned for an unsupported regression method.
	ErrUnknownMethod = errors.New("unknown regression method")
)

// Curve is a fitted regression model.
//
// Coefficients are, by method:
//   - linear: [intercept, slope], y = a + b.x
//   - exponential: [a, b], y = a.exp(b.x)
//   - logarithmic: [a, b], y = a + b.ln(x)
//   - polynomial: ascending powers of x
type Curve struct {
	Method       model.RegressionMethod
	Coefficients []float64
	RSquared     float64
}

// At evaluates the curve at x.
func (c Curve) At(x float64) float64 {
	switch c.Method {
	case model.RegressionExponential:
		return c.Coefficients[0] * math.Exp(c.Coefficients[1]*x)
	case model.RegressionLogarithmic:
		return c.Coefficients[0] + c.Coefficients[1]*math.Log(x)
	default:
		// linear and polynomial, Horner's scheme
		var y float64
		for i := len(c.Coefficients) - 1; i >= 0; i-- {
			y = y*x + c.Coefficients[i]
		}

		return y
	}
}

// Expression renders the equation of the curve, e.g. "y = 2x + 1".
func (c Curve) Expression() string {
	switch c.Method {
	case model.RegressionExponential:
		return "y = " + format(c.Coefficients[0]) + "e^(" + format(c.Coefficients[1]) + "x)"
	case model.RegressionLogarithmic:
		return "y = " + format(c.Coefficients[0]) + " + " + format(c.Coefficients[1]) + "ln(x)"
	}

	var terms []string
	for i := len(c.Coefficients) - 1; i >= 0; i-- {
		coef := c.Coefficients[i]
		if coef == 0 && len(c.Coefficients) > 1 {
			continue
		}

		switch i {
		case 0:
			terms = append(terms, format(coef))
		case 1:
			terms = append(terms, format(coef)+"x")
		default:
			terms = append(terms, format(coef)+"x^"+strconv.Itoa(i))
		}
	}

	if len(terms) == 0 {
		return "y = 0"
	}

	return "y = " + strings.ReplaceAll(strings.Join(terms, " + "), "+ -", "- ")
}

func format(f float64) string {
	return strconv.FormatFloat(f, 'g', 4, 64)
}

// Fit a regression model on the points (xs[i], ys[i]).
//
// The order is only used by the polynomial method. An order of 0 means 2.
func Fit(method model.RegressionMethod, order int, xs, ys []float64) (Curve, error) {
	if len(xs) != len(ys) {
		return Curve{}, fmt.Errorf("%d x values for %d y values: %w", len(xs), len(ys), ErrNotEnoughPoints)
	}

	var (
		curve Curve
		err   error
	)

	switch method {
	case model.RegressionLinear:
		curve, err = fitLinear(xs, ys)
	case model.RegressionExponential:
		curve, err = fitExponential(xs, ys)
	case model.RegressionLogarithmic:
		curve, err = fitLogarithmic(xs, ys)
	case model.RegressionPolynomial:
		if order == 0 {
			order = defaultOrder
		}
		curve, err = fitPolynomial(xs, ys, order)
	default:
		return Curve{}, fmt.Errorf("%q: %w", method, ErrUnknownMethod)
	}

	if err != nil {
		return Curve{}, fmt.Errorf("%s regression: %w", method, err)
	}

	estimates := make([]float64, len(xs))
	for i, x := range xs {
		estimates[i] = curve.At(x)
	}
	curve.RSquared = gonumstat.RSquaredFrom(estimates, ys, nil)

	return curve, nil
}

// Sample evaluates the curve at each x, and returns the [x, y] points sorted along x.
func Sample(c Curve, xs []float64) [][2]float64 {
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	points := make([][2]float64, 0, len(sorted))
	for _, x := range sorted {
		points = append(points, [2]float64{x, c.At(x)})
	}

	return points
}

func fitLinear(xs, ys []float64) (Curve, error) {
	if len(xs) < 2 {
		return Curve{}, fmt.Errorf("%d points: %w", len(xs), ErrNotEnoughPoints)
	}

	alpha, beta := gonumstat.LinearRegression(xs, ys, nil, false)

	return Curve{
		Method:       model.RegressionLinear,
		Coefficients: []float64{alpha, beta},
	}, nil
}

// fitExponential fits ln(y) = ln(a) + b.x.
func fitExponential(xs, ys []float64) (Curve, error) {
	logs := make([]float64, len(ys))
	for i, y := range ys {
		if y <= 0 {
			return Curve{}, fmt.Errorf("y=%v: %w", y, ErrOutOfDomain)
		}
		logs[i] = math.Log(y)
	}

	linear, err := fitLinear(xs, logs)
	if err != nil {
		return Curve{}, err
	}

	return Curve{
		Method:       model.RegressionExponential,
		Coefficients: []float64{math.Exp(linear.Coefficients[0]), linear.Coefficients[1]},
	}, nil
}

// fitLogarithmic fits y = a + b.ln(x).
func fitLogarithmic(xs, ys []float64) (Curve, error) {
	logs := make([]float64, len(xs))
	for i, x := range xs {
		if x <= 0 {
			return Curve{}, fmt.Errorf("x=%v: %w", x, ErrOutOfDomain)
		}
		logs[i] = math.Log(x)
	}

	linear, err := fitLinear(logs, ys)
	if err != nil {
		return Curve{}, err
	}

	return Curve{
		Method:       model.RegressionLogarithmic,
		Coefficients: linear.Coefficients,
	}, nil
}

// fitPolynomial solves the least squares problem on the Vandermonde matrix of xs.
func fitPolynomial(xs, ys []float64, order int) (Curve, error) {
	if order < 1 {
		return Curve{}, fmt.Errorf("order %d: %w", order, ErrOutOfDomain)
	}

	n, cols := len(xs), order+1
	if n < cols {
		return Curve{}, fmt.Errorf("%d points for order %d: %w", n, order, ErrNotEnoughPoints)
	}

	vandermonde := mat.NewDense(n, cols, nil)
	for i, x := range xs {
		power := 1.0
		for j := range cols {
			vandermonde.Set(i, j, power)
			power *= x
		}
	}

	var coefficients mat.VecDense
	if err := coefficients.SolveVec(vandermonde, mat.NewVecDense(n, append([]float64(nil), ys...))); err != nil {
		var condition mat.Condition
		if !errors.As(err, &condition) {
			return Curve{}, err
		}
		// ill-conditioned but solved: keep the approximation
	}

	return Curve{
		Method:       model.RegressionPolynomial,
		Coefficients: append([]float64(nil), coefficients.RawVector().Data...),
	}, nil
}
