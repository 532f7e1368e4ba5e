package perf

import (
	"fmt"
	"math"
)

// XirrParams bounds the solver. The zero value is not useful; start from
// DefaultXirrParams.
type XirrParams struct {
	Guess         float64 // initial Newton guess
	Tolerance     float64 // |NPV| below which the rate is accepted
	MaxIterations int
}

// DefaultXirrParams returns the standard solver parameters.
func DefaultXirrParams() XirrParams {
	return XirrParams{Guess: 0.1, Tolerance: 1e-7, MaxIterations: 100}
}

// Search range for the bisection fallback. Rates below -99.9% a year or above
// 1000% are treated as non-convergence rather than answers.
const (
	xirrRateMin = -0.999
	xirrRateMax = 10.0
)

// ConvergenceError reports that the solver gave up without a reliable root.
type ConvergenceError struct {
	Iterations int
	Reason     string
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("xirr did not converge after %d iterations: %s", e.Iterations, e.Reason)
}

// Xirr solves for the annualized internal rate of return of a series of
// dated cash flows, using DefaultXirrParams.
//
// The day-count convention is actual days / 365. The result is a fraction
// (0.1234 means 12.34% a year). When cash-flow signs alternate more than
// once the equation may admit several roots; the solver returns the first
// one it converges to, which is an accepted limitation of XIRR itself.
func Xirr(flows []CashFlow) (float64, error) {
	return XirrWith(flows, DefaultXirrParams())
}

// XirrWith is Xirr with explicit solver parameters.
func XirrWith(flows []CashFlow, params XirrParams) (float64, error) {
	if len(flows) < 2 {
		return 0, &InsufficientDataError{Reason: "need at least two cash flows"}
	}

	// Project the decimal flows onto the float64 plane the solver works in.
	amounts := make([]float64, len(flows))
	years := make([]float64, len(flows))
	t0 := flows[0].Date
	for i, f := range flows {
		amounts[i] = f.Amount.AsFloat()
		years[i] = float64(f.Date.DaysSince(t0)) / 365.0
	}

	npv := func(rate float64) float64 {
		var sum float64
		for i := range amounts {
			sum += amounts[i] / math.Pow(1+rate, years[i])
		}
		return sum
	}
	// derivative of npv with respect to rate
	dnpv := func(rate float64) float64 {
		var sum float64
		for i := range amounts {
			sum -= years[i] * amounts[i] / math.Pow(1+rate, years[i]+1)
		}
		return sum
	}

	// Newton first: fast when it behaves.
	rate := params.Guess
	for i := 0; i < params.MaxIterations; i++ {
		value := npv(rate)
		if math.Abs(value) < params.Tolerance {
			return rate, nil
		}
		derivative := dnpv(rate)
		if derivative == 0 || math.IsNaN(derivative) || math.IsInf(derivative, 0) {
			break // numerically flat, bisection will take over
		}
		next := rate - value/derivative
		if math.IsNaN(next) || next <= xirrRateMin || next >= xirrRateMax {
			break // diverging out of the plausible range
		}
		rate = next
	}

	return bisect(npv, params)
}

// bisect brackets a sign change of npv inside (xirrRateMin, xirrRateMax) and
// narrows it down.
func bisect(npv func(float64) float64, params XirrParams) (float64, error) {
	lo, hi, err := bracket(npv, params.MaxIterations)
	if err != nil {
		return 0, err
	}
	flo := npv(lo)
	for i := 0; i < params.MaxIterations; i++ {
		mid := (lo + hi) / 2
		fmid := npv(mid)
		if math.Abs(fmid) < params.Tolerance || (hi-lo)/2 < params.Tolerance {
			return mid, nil
		}
		if (flo < 0) == (fmid < 0) {
			lo, flo = mid, fmid
		} else {
			hi = mid
		}
	}
	return 0, &ConvergenceError{Iterations: params.MaxIterations, Reason: "bisection interval did not shrink below tolerance"}
}

// bracket scans the search range for two rates whose NPVs have opposite signs.
func bracket(npv func(float64) float64, steps int) (lo, hi float64, err error) {
	width := (xirrRateMax - xirrRateMin) / float64(steps)
	prev := xirrRateMin
	fprev := npv(prev)
	for i := 1; i <= steps; i++ {
		next := xirrRateMin + float64(i)*width
		fnext := npv(next)
		if !math.IsNaN(fprev) && !math.IsNaN(fnext) && (fprev < 0) != (fnext < 0) {
			return prev, next, nil
		}
		prev, fprev = next, fnext
	}
	return 0, 0, &ConvergenceError{
		Iterations: steps,
		Reason:     fmt.Sprintf("no sign change of NPV in (%g, %g)", xirrRateMin, xirrRateMax),
	}
}
