// Package gradescale maps numeric scores onto letter grades and the 4.0
// grade-point scale. All functions are pure; out-of-range input falls through
// to "F"/0.0 rather than erroring.
package gradescale

// scoreBand is one row of a descending threshold table. The first band whose
// threshold the value meets wins.
type scoreBand struct {
	threshold float64
	letter    string
	points    float64
}

// Score thresholds and the GPA thresholds below are two independent lookup
// tables. The GPA breakpoints are not proportional to the score breakpoints,
// so neither table may be derived from the other.
var scoreBands = []scoreBand{
	{93, "A", 4.0},
	{90, "A-", 3.7},
	{87, "B+", 3.3},
	{83, "B", 3.0},
	{80, "B-", 2.7},
	{77, "C+", 2.3},
	{73, "C", 2.0},
	{70, "C-", 1.7},
	{67, "D+", 1.3},
	{63, "D", 1.0},
	{60, "D-", 0.7},
}

type gpaBand struct {
	threshold float64
	letter    string
}

var gpaBands = []gpaBand{
	{3.7, "A"},
	{3.3, "A-"},
	{3.0, "B+"},
	{2.7, "B"},
	{2.3, "B-"},
	{2.0, "C+"},
	{1.7, "C"},
	{1.3, "C-"},
	{1.0, "D+"},
	{0.7, "D"},
}

// ScoreToLetterGrade converts a 0-100 score into a letter grade.
func ScoreToLetterGrade(score float64) string {
	for _, band := range scoreBands {
		if score >= band.threshold {
			return band.letter
		}
	}
	return "F"
}

// ScoreToGradePoints converts a 0-100 score onto the 4.0 scale.
func ScoreToGradePoints(score float64) float64 {
	for _, band := range scoreBands {
		if score >= band.threshold {
			return band.points
		}
	}
	return 0.0
}

// GPAToLetterGrade converts a 0-4.0 grade-point average into a letter grade.
func GPAToLetterGrade(gpa float64) string {
	for _, band := range gpaBands {
		if gpa >= band.threshold {
			return band.letter
		}
	}
	return "F"
}
