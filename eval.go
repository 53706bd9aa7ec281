package legtracker

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/nmichlo/legtracker/internal/assign"
	"github.com/nmichlo/legtracker/internal/motmetrics"
)

// GroundTruthLeg is one recorded ground-truth leg position at a given
// frame, as read from a CSV ground-truth file (frame,leg_id,x,y).
type GroundTruthLeg struct {
	Frame int
	LegID int
	X, Y  float64
}

// LoadGroundTruthCSV reads a ground-truth file in "frame,leg_id,x,y"
// format (one header line, then one row per recorded leg position),
// grouping rows by frame number in the order frames first appear.
func LoadGroundTruthCSV(path string) (frames []int, byFrame map[int][]GroundTruthLeg, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("legtracker: open ground truth: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReader(f))
	rows, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("legtracker: parse ground truth: %w", err)
	}
	if len(rows) < 1 {
		return nil, nil, fmt.Errorf("legtracker: ground truth file is empty")
	}

	byFrame = make(map[int][]GroundTruthLeg)
	var order []int
	for _, row := range rows[1:] {
		if len(row) < 4 {
			continue
		}
		frame, errA := strconv.Atoi(row[0])
		legID, errB := strconv.Atoi(row[1])
		x, errC := strconv.ParseFloat(row[2], 64)
		y, errD := strconv.ParseFloat(row[3], 64)
		if errA != nil || errB != nil || errC != nil || errD != nil {
			continue
		}
		if _, seen := byFrame[frame]; !seen {
			order = append(order, frame)
		}
		byFrame[frame] = append(byFrame[frame], GroundTruthLeg{Frame: frame, LegID: legID, X: x, Y: y})
	}
	return order, byFrame, nil
}

// Evaluator accumulates per-frame MOT events between ground-truth leg
// positions and tracked LegRecords, matched by Euclidean distance rather
// than bounding-box IoU (the sole difference from the MOTChallenge
// bbox-tracking evaluation this is adapted from).
type Evaluator struct {
	acc       *motmetrics.MOTAccumulator
	threshold float64
}

// NewEvaluator returns an Evaluator that accepts a ground-truth/tracked
// match within matchDistance meters.
func NewEvaluator(sequenceName string, matchDistance float64) *Evaluator {
	return &Evaluator{
		acc:       motmetrics.NewMOTAccumulator(sequenceName),
		threshold: matchDistance,
	}
}

// Submit records one frame's events: gt is the ground-truth leg set for
// this frame, tracked is the tracker's current LegRecords.
func (e *Evaluator) Submit(gt []GroundTruthLeg, tracked []LegRecord) {
	gtIDs := make([]int, len(gt))
	for i, g := range gt {
		gtIDs[i] = g.LegID
	}
	predIDs := make([]int, len(tracked))
	for i, r := range tracked {
		predIDs[i] = r.LegID
	}

	cost := make([][]float64, len(gt))
	for i, g := range gt {
		cost[i] = make([]float64, len(tracked))
		for j, r := range tracked {
			cost[i][j] = dist(Point{g.X, g.Y}, Point{r.PosX, r.PosY})
		}
	}

	e.acc.Update(cost, gtIDs, predIDs, e.threshold, solveAsMatcher)
}

// solveAsMatcher adapts internal/assign.Solve to the (matches,
// unmatchedGT, unmatchedPred) shape the accumulator expects.
func solveAsMatcher(costMatrix [][]float64, threshold float64) ([][2]int, []int, []int) {
	assignments, unmatchedRows, unmatchedCols := assign.Solve(costMatrix, threshold)
	matches := make([][2]int, len(assignments))
	for i, a := range assignments {
		matches[i] = [2]int{a.Row, a.Col}
	}
	return matches, unmatchedRows, unmatchedCols
}

// Summary is the final MOTA/MOTP report for a sequence.
type Summary struct {
	SequenceName  string
	NumFrames     int
	NumObjects    int
	NumMatches    int
	NumMisses     int
	NumFalsePos   int
	NumSwitches   int
	MOTA          float64 // 1 - (misses+falsePos+switches)/numObjects
	MOTP          float64 // mean match distance
	MostlyTracked int
	MostlyLost    int
	PartlyTracked int
	Fragmentation int
}

// Summary computes the final report from all frames submitted so far.
func (e *Evaluator) Summary() Summary {
	a := e.acc
	mt, ml, pt, frag := a.ComputeExtendedMetrics()

	mota := 1.0
	if a.NumObjects > 0 {
		mota = 1.0 - float64(a.NumMisses+a.NumFalsePositives+a.NumSwitches)/float64(a.NumObjects)
	}
	motp := 0.0
	if a.NumMatches > 0 {
		motp = a.TotalDistance / float64(a.NumMatches)
	}

	return Summary{
		SequenceName:  a.VideoName,
		NumFrames:     a.FrameID,
		NumObjects:    a.NumObjects,
		NumMatches:    a.NumMatches,
		NumMisses:     a.NumMisses,
		NumFalsePos:   a.NumFalsePositives,
		NumSwitches:   a.NumSwitches,
		MOTA:          mota,
		MOTP:          motp,
		MostlyTracked: mt,
		MostlyLost:    ml,
		PartlyTracked: pt,
		Fragmentation: frag,
	}
}
