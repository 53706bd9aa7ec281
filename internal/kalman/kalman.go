// Copyright 2025 Nathan Michlo
// SPDX-License-Identifier: MIT
//
// Adapted from a Go port of filterpy.kalman.KalmanFilter, generalized
// from a constant-velocity 2-block state to a constant-acceleration
// 3-block state (position, velocity, acceleration per axis).
// Original source: https://github.com/rlabbe/filterpy/blob/master/filterpy/kalman/kalman_filter.py
//
// Original Copyright (c) 2015 Roger R. Labbe Jr.
// Original License: MIT
//
// See LICENSE file in this directory and THIRD_PARTY_LICENSES.md in repository root.

// Package kalman implements a constant-acceleration 2-D Kalman filter for
// leg tracking: position, velocity, and acceleration are tracked per axis
// (state dimension 6), while only position is observed.
package kalman

import (
	"gonum.org/v1/gonum/mat"
)

// Filter is a full-matrix Kalman filter. F/H/Q/R are built once at
// construction from the scan period and observation variance and reused
// unchanged across Predict/Update calls.
type Filter struct {
	dimX int
	dimZ int
	x    *mat.Dense // state (dimX, 1)
	P    *mat.Dense // covariance (dimX, dimX)
	F    *mat.Dense // transition (dimX, dimX)
	H    *mat.Dense // measurement (dimZ, dimX)
	R    *mat.Dense // measurement noise (dimZ, dimZ)
	Q    *mat.Dense // process noise (dimX, dimX)

	xPrior *mat.Dense
	pPrior *mat.Dense
}

// NewConstantAcceleration2D builds a 6-state constant-acceleration filter
// with state transition for one scan period dt and measurement noise
// varianceObservation on each of the two observed position components.
//
// State layout: [x, vx, ax, y, vy, ay] — each axis's position/velocity/
// acceleration block is contiguous, matching how the predicted positional
// covariance sub-block is read back out by MeasurementCovarianceScalar.
func NewConstantAcceleration2D(dt, varianceObservation float64) *Filter {
	const dimX, dimZ = 6, 2
	f := &Filter{
		dimX:   dimX,
		dimZ:   dimZ,
		x:      mat.NewDense(dimX, 1, nil),
		P:      mat.NewDense(dimX, dimX, nil),
		F:      mat.NewDense(dimX, dimX, nil),
		H:      mat.NewDense(dimZ, dimX, nil),
		R:      mat.NewDense(dimZ, dimZ, nil),
		Q:      mat.NewDense(dimX, dimX, nil),
		xPrior: mat.NewDense(dimX, 1, nil),
		pPrior: mat.NewDense(dimX, dimX, nil),
	}

	// One 3x3 constant-acceleration block per axis: p' = p + v*dt + 0.5*a*dt^2,
	// v' = v + a*dt, a' = a.
	block := [3][3]float64{
		{1, dt, 0.5 * dt * dt},
		{0, 1, dt},
		{0, 0, 1},
	}
	for axis := 0; axis < 2; axis++ {
		off := axis * 3
		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				f.F.Set(off+r, off+c, block[r][c])
			}
		}
	}

	// Observe position only, one row per axis.
	f.H.Set(0, 0, 1) // x
	f.H.Set(1, 3, 1) // y

	f.R.Set(0, 0, varianceObservation)
	f.R.Set(1, 1, varianceObservation)

	// Process noise: small, growing with the order of the derivative,
	// scaled by dt so faster scan rates inject proportionally less noise
	// per step.
	qDiag := [3]float64{1e-4, 1e-2, 1e-1}
	for axis := 0; axis < 2; axis++ {
		off := axis * 3
		for i := 0; i < 3; i++ {
			f.Q.Set(off+i, off+i, qDiag[i]*dt)
		}
	}

	// Initial covariance: confident in position, agnostic on velocity
	// and acceleration.
	pDiag := [3]float64{varianceObservation, 1.0, 1.0}
	for axis := 0; axis < 2; axis++ {
		off := axis * 3
		for i := 0; i < 3; i++ {
			f.P.Set(off+i, off+i, pDiag[i])
		}
	}

	return f
}

// Predict advances state and covariance by one scan period: x = F@x,
// P = F@P@F^T + Q.
func (f *Filter) Predict() {
	f.xPrior.Mul(f.F, f.x)
	f.x.Copy(f.xPrior)

	var temp mat.Dense
	temp.Mul(f.F, f.P)
	f.pPrior.Mul(&temp, f.F.T())
	f.P.Add(f.pPrior, f.Q)
}

// Update incorporates a position measurement z (dimZ, 1). Skips the gain
// update (leaving P as predicted) if the innovation covariance is
// singular, matching the teacher's degrade-rather-than-panic behavior.
func (f *Filter) Update(z *mat.Dense) {
	var hx mat.Dense
	hx.Mul(f.H, f.x)
	var y mat.Dense
	y.Sub(z, &hx)

	var temp1 mat.Dense
	temp1.Mul(f.H, f.P)
	var s mat.Dense
	s.Mul(&temp1, f.H.T())
	s.Add(&s, f.R)

	var sInv mat.Dense
	if err := sInv.Inverse(&s); err != nil {
		return
	}

	var temp2 mat.Dense
	temp2.Mul(f.P, f.H.T())
	var k mat.Dense
	k.Mul(&temp2, &sInv)

	var kY mat.Dense
	kY.Mul(&k, &y)
	f.x.Add(f.x, &kY)

	identity := mat.NewDense(f.dimX, f.dimX, nil)
	for i := 0; i < f.dimX; i++ {
		identity.Set(i, i, 1.0)
	}
	var kH mat.Dense
	kH.Mul(&k, f.H)
	var iMinusKH mat.Dense
	iMinusKH.Sub(identity, &kH)

	// Joseph form: P = (I-KH)P(I-KH)^T + KRK^T. Numerically stable under
	// repeated predict/update cycles, unlike the simplified P=(I-KH)P.
	var left mat.Dense
	left.Mul(&iMinusKH, f.P)
	var leftSym mat.Dense
	leftSym.Mul(&left, iMinusKH.T())

	var kR mat.Dense
	kR.Mul(&k, f.R)
	var kRkT mat.Dense
	kRkT.Mul(&kR, k.T())

	var newP mat.Dense
	newP.Add(&leftSym, &kRkT)
	f.P.Copy(&newP)
}

// MeasurementCovarianceScalar reduces the predicted positional covariance
// block to a single representative scalar (sum of the x/y position
// variances), used as the denominator of the Mahalanobis surrogate.
func (f *Filter) MeasurementCovarianceScalar() float64 {
	return f.P.At(0, 0) + f.P.At(3, 3)
}

// CovarianceTrace sums the diagonal of P, used for the max_cov dead-track
// check.
func (f *Filter) CovarianceTrace() float64 {
	sum := 0.0
	for i := 0; i < f.dimX; i++ {
		sum += f.P.At(i, i)
	}
	return sum
}

// State returns the raw (dimX,1) state vector [x, vx, ax, y, vy, ay].
func (f *Filter) State() *mat.Dense { return f.x }

// SetState overwrites the state vector.
func (f *Filter) SetState(x *mat.Dense) { f.x.Copy(x) }

// Covariance returns the raw (dimX,dimX) covariance matrix.
func (f *Filter) Covariance() *mat.Dense { return f.P }

// SetCovariance overwrites the covariance matrix.
func (f *Filter) SetCovariance(p *mat.Dense) { f.P.Copy(p) }

// Position returns the tracked (x, y) position.
func (f *Filter) Position() (x, y float64) {
	return f.x.At(0, 0), f.x.At(3, 0)
}

// Velocity returns the tracked (vx, vy) velocity.
func (f *Filter) Velocity() (vx, vy float64) {
	return f.x.At(1, 0), f.x.At(4, 0)
}

// Acceleration returns the tracked (ax, ay) acceleration.
func (f *Filter) Acceleration() (ax, ay float64) {
	return f.x.At(2, 0), f.x.At(5, 0)
}

// SetPosition overwrites only the positional components of the state,
// used to seed a new track from a cluster centroid.
func (f *Filter) SetPosition(x, y float64) {
	f.x.Set(0, 0, x)
	f.x.Set(3, 0, y)
}

// ResetCovariance restores P to its initial, low-confidence-in-velocity
// state. Used by the adaptive reset rule in the GNN policy (§4.4.1).
func (f *Filter) ResetCovariance(varianceObservation float64) {
	pDiag := [3]float64{varianceObservation, 1.0, 1.0}
	f.P = mat.NewDense(f.dimX, f.dimX, nil)
	for axis := 0; axis < 2; axis++ {
		off := axis * 3
		for i := 0; i < 3; i++ {
			f.P.Set(off+i, off+i, pDiag[i])
		}
	}
}

// DimX returns the state dimension (always 6 for this model).
func (f *Filter) DimX() int { return f.dimX }
