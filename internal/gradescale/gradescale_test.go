package gradescale

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreToLetterGrade(t *testing.T) {
	cases := []struct {
		score  float64
		letter string
	}{
		{100, "A"},
		{93, "A"},
		{92.9, "A-"},
		{90, "A-"},
		{87, "B+"},
		{83, "B"},
		{80, "B-"},
		{77, "C+"},
		{73, "C"},
		{70, "C-"},
		{67, "D+"},
		{63, "D"},
		{60, "D-"},
		{59, "F"},
		{0, "F"},
		{-5, "F"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.letter, ScoreToLetterGrade(tc.score), "score %v", tc.score)
	}
}

func TestScoreToGradePoints(t *testing.T) {
	cases := []struct {
		score  float64
		points float64
	}{
		{100, 4.0},
		{93, 4.0},
		{92.9, 3.7},
		{90, 3.7},
		{87, 3.3},
		{83, 3.0},
		{80, 2.7},
		{77, 2.3},
		{73, 2.0},
		{70, 1.7},
		{67, 1.3},
		{63, 1.0},
		{60, 0.7},
		{59, 0.0},
		{130, 4.0},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.points, ScoreToGradePoints(tc.score), 1e-9, "score %v", tc.score)
	}
}

func TestGPAToLetterGrade(t *testing.T) {
	cases := []struct {
		gpa    float64
		letter string
	}{
		{4.0, "A"},
		{3.7, "A"},
		{3.5, "A-"},
		{3.3, "A-"},
		{3.0, "B+"},
		{2.7, "B"},
		{2.3, "B-"},
		{2.0, "C+"},
		{1.7, "C"},
		{1.3, "C-"},
		{1.0, "D+"},
		{0.7, "D"},
		{0.5, "F"},
		{0.0, "F"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.letter, GPAToLetterGrade(tc.gpa), "gpa %v", tc.gpa)
	}
}

// The GPA table is its own lookup table; 3.0 maps to B+ here even though a
// score of 83 (3.0 points) carries the letter B on the score table.
func TestTablesAreIndependent(t *testing.T) {
	assert.Equal(t, "B", ScoreToLetterGrade(83))
	assert.InDelta(t, 3.0, ScoreToGradePoints(83), 1e-9)
	assert.Equal(t, "B+", GPAToLetterGrade(3.0))
}
