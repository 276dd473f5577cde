package trends

import (
	"math"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ForecastYear is the single year every trend is projected to.
const ForecastYear = 2025

// TrendResult is the per-tag payload returned by the trends endpoint. Years
// and Counts hold the history followed by the forecast point.
type TrendResult struct {
	Language   string  `json:"language"`
	Years      []int   `json:"years"`
	Counts     []int   `json:"counts"`
	GrowthRate float64 `json:"growth_rate"`
	Verdict    Verdict `json:"verdict"`
	Prediction int     `json:"prediction"`
	Accuracy   float64 `json:"accuracy"`
}

// line is y = intercept + slope*x over normalized years.
type line struct {
	slope     float64
	intercept float64
}

func (l line) at(x float64) float64 {
	return l.intercept + l.slope*x
}

// Model fits a least-squares line to the series over years offset from the
// first observed year, scores it and projects it to ForecastYear.
func Model(series TagSeries) (TrendResult, error) {
	if err := validate(series); err != nil {
		return TrendResult{}, &FitError{Tag: series.Tag, Err: err}
	}

	base := series.Years[0]
	xs := make([]float64, len(series.Years))
	ys := make([]float64, len(series.Counts))
	for i := range series.Years {
		xs[i] = float64(series.Years[i] - base)
		ys[i] = float64(series.Counts[i])
	}

	fit := fitLine(xs, ys)
	if math.IsNaN(fit.slope) || math.IsInf(fit.slope, 0) ||
		math.IsNaN(fit.intercept) || math.IsInf(fit.intercept, 0) {
		return TrendResult{}, &FitError{Tag: series.Tag, Err: ErrNonFinite}
	}

	fitted := make([]float64, len(xs))
	for i, x := range xs {
		fitted[i] = fit.at(x)
	}

	// Truncation toward zero, not rounding.
	prediction := int(math.Trunc(fit.at(float64(ForecastYear - base))))

	years := make([]int, 0, len(series.Years)+1)
	years = append(years, series.Years...)
	years = append(years, ForecastYear)

	counts := make([]int, 0, len(series.Counts)+1)
	counts = append(counts, series.Counts...)
	counts = append(counts, prediction)

	return TrendResult{
		Language:   series.Tag,
		Years:      years,
		Counts:     counts,
		GrowthRate: roundTo(fit.slope, 2),
		Verdict:    Classify(fit.slope),
		Prediction: prediction,
		Accuracy:   roundTo(rSquared(fitted, ys)*100, 1),
	}, nil
}

func validate(series TagSeries) error {
	if len(series.Years) == 0 {
		return ErrEmptySeries
	}
	if len(series.Years) != len(series.Counts) {
		return ErrLengthMismatch
	}
	for i := 1; i < len(series.Years); i++ {
		if series.Years[i] <= series.Years[i-1] {
			return ErrUnorderedYears
		}
	}
	return nil
}

// fitLine runs ordinary least squares. With fewer than two points, or no
// spread in x, the fit degenerates to a flat line through the mean.
func fitLine(xs, ys []float64) line {
	if len(xs) < 2 || floats.Min(xs) == floats.Max(xs) {
		return line{slope: 0, intercept: stat.Mean(ys, nil)}
	}
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	return line{slope: beta, intercept: alpha}
}

// rSquared is the coefficient of determination. When the observations have
// zero variance the ratio is undefined; a fit that reproduces them exactly
// scores 1 and anything else scores 0.
func rSquared(fitted, actual []float64) float64 {
	if floats.Min(actual) == floats.Max(actual) {
		if floats.Distance(fitted, actual, 2) == 0 {
			return 1
		}
		return 0
	}
	return stat.RSquaredFrom(fitted, actual, nil)
}

// roundTo rounds half to even on the exact binary value of v, so 98.25
// becomes 98.2 while 98.35, stored just below the tie, becomes 98.3.
func roundTo(v float64, places int32) float64 {
	return decimal.NewFromFloatWithExponent(v, -40).RoundBank(places).InexactFloat64()
}
