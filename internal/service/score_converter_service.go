package service

import "fmt"

// ScoreConverterService turns a percentage into the letter shown next to results.
type ScoreConverterService interface {
	ToLetterGrade(percentage int) (string, error)
}

type gradeBand struct {
	min    int
	letter string
}

// bands are checked top down.
var defaultGradeBands = []gradeBand{
	{90, "A"},
	{80, "B"},
	{70, "C"},
	{60, "D"},
	{0, "F"},
}

type scoreConverterServiceImpl struct {
	bands []gradeBand
}

func NewScoreConverterService() ScoreConverterService {
	return &scoreConverterServiceImpl{bands: defaultGradeBands}
}

func (s *scoreConverterServiceImpl) ToLetterGrade(percentage int) (string, error) {
	if percentage < 0 || percentage > 100 {
		return "", fmt.Errorf("percentage %d is out of valid range (0-100)", percentage)
	}
	for _, b := range s.bands {
		if percentage >= b.min {
			return b.letter, nil
		}
	}
	return "F", nil
}
