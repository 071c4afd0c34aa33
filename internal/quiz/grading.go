package quiz

// Grade turns a manual score into a Result. Scores outside [0, TotalPoints] are rejected.
func Grade(def Definition, score float64) (Result, error) {
	if def.Type != TypeOpenEnded {
		return Result{}, ErrNotGradable
	}
	if score < 0 || score > def.TotalPoints {
		return Result{}, ErrScoreOutOfRange
	}
	pct := Percentage(score, def.TotalPoints)
	return Result{
		Score:       score,
		TotalPoints: def.TotalPoints,
		Percentage:  pct,
		Passed:      Passed(pct, def.PassingScore),
		Graded:      true,
	}, nil
}
