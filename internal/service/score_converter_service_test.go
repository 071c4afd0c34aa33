package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreConverter_ToLetterGrade(t *testing.T) {
	sc := NewScoreConverterService()
	tests := []struct {
		pct  int
		want string
	}{
		{100, "A"}, {90, "A"}, {89, "B"}, {80, "B"}, {75, "C"}, {60, "D"}, {59, "F"}, {0, "F"},
	}
	for _, tt := range tests {
		got, err := sc.ToLetterGrade(tt.pct)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "percentage %d", tt.pct)
	}

	_, err := sc.ToLetterGrade(101)
	assert.Error(t, err)
	_, err = sc.ToLetterGrade(-1)
	assert.Error(t, err)
}
