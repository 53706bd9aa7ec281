// Copyright 2025 Nathan Michlo
// SPDX-License-Identifier: BSD-3-Clause
//
// Adapted from a Go port of scipy.optimize.linear_sum_assignment behavior.
// Original source: https://github.com/scipy/scipy/blob/main/scipy/optimize/_linear_sum_assignment.py
//
// Original Copyright (c) 2001-2002 Enthought, Inc. 2003-2024, SciPy Developers
// Original License: BSD-3-Clause
//
// Uses go-hungarian (MIT License) by Arthur Kushman for the underlying
// Hungarian algorithm. See LICENSE file in this directory and
// THIRD_PARTY_LICENSES.md in repository root.

// Package assign solves the optimal (minimum cost) bipartite assignment
// problem used by the global-nearest-neighbor association policy and the
// evaluation harness.
package assign

import (
	"math"

	hungarian "github.com/arthurkushman/go-hungarian"
)

// Assignment is one matched (row, col) pair from a cost matrix.
type Assignment struct {
	Row, Col int
	Cost     float64
}

// Solve finds the minimum-cost assignment over a (possibly rectangular)
// cost matrix, rejecting any match whose cost exceeds maxCost. Rows/cols
// with no accepted match are returned separately.
//
// go-hungarian solves for maximum profit, so cost is converted to profit
// by anchoring on the matrix's own finite maximum rather than a fixed
// constant: fixed small constants (e.g. 10.0) work for bounded costs like
// IoU but collapse the ordering of costs that legitimately range from
// near-zero up to a large max_cost sentinel, which is exactly the shape
// of the cost matrices built by the association policies in this module.
func Solve(costMatrix [][]float64, maxCost float64) (assignments []Assignment, unmatchedRows, unmatchedCols []int) {
	numRows := len(costMatrix)
	if numRows == 0 {
		return nil, nil, nil
	}
	numCols := len(costMatrix[0])
	if numCols == 0 {
		unmatchedRows = make([]int, numRows)
		for i := range unmatchedRows {
			unmatchedRows[i] = i
		}
		return nil, unmatchedRows, nil
	}

	size := numRows
	if numCols > size {
		size = numCols
	}

	matrixMax := 0.0
	for i := 0; i < numRows; i++ {
		for j := 0; j < numCols; j++ {
			v := costMatrix[i][j]
			if !math.IsInf(v, 0) && v > matrixMax {
				matrixMax = v
			}
		}
	}

	profitMatrix := make([][]float64, size)
	for i := range profitMatrix {
		profitMatrix[i] = make([]float64, size)
		for j := range profitMatrix[i] {
			if i < numRows && j < numCols {
				profitMatrix[i][j] = matrixMax - costMatrix[i][j]
			}
			// dummy padding cells stay at zero profit
		}
	}

	result := hungarian.SolveMax(profitMatrix)

	matchedRows := make(map[int]bool, numRows)
	matchedCols := make(map[int]bool, numCols)

	for rowIdx, cols := range result {
		for colIdx, profit := range cols {
			if rowIdx >= numRows || colIdx >= numCols {
				continue
			}
			cost := matrixMax - profit
			if cost <= maxCost {
				assignments = append(assignments, Assignment{Row: rowIdx, Col: colIdx, Cost: cost})
				matchedRows[rowIdx] = true
				matchedCols[colIdx] = true
			}
		}
	}

	for i := 0; i < numRows; i++ {
		if !matchedRows[i] {
			unmatchedRows = append(unmatchedRows, i)
		}
	}
	for j := 0; j < numCols; j++ {
		if !matchedCols[j] {
			unmatchedCols = append(unmatchedCols, j)
		}
	}

	return assignments, unmatchedRows, unmatchedCols
}
