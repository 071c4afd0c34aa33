package model

// All lists every persisted model, in migration order.
func All() []interface{} {
	return []interface{}{
		&Course{},
		&Quiz{},
		&Question{},
		&AttemptSession{},
		&Submission{},
		&GradeEvent{},
	}
}
