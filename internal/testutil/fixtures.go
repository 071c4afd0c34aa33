package testutil

import (
	"testing"

	"github.com/lshigami/Nihongo/internal/model"
	"gorm.io/gorm"
)

// CreateCourse inserts a course with the given answer-visibility default.
func CreateCourse(t *testing.T, db *gorm.DB, showAnswers bool) model.Course {
	t.Helper()
	c := model.Course{Title: "日本語 N5", Description: "Beginner Japanese", ShowAnswers: showAnswers}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}
	return c
}

// MCQQuiz builds (without saving) four 25-point questions; option 1 is always correct.
func MCQQuiz(courseID uint, moduleIdx, itemIdx int) model.Quiz {
	q := model.Quiz{
		CourseID:     courseID,
		ModuleIndex:  moduleIdx,
		ItemIndex:    itemIdx,
		Title:        "ひらがな quiz",
		QuizType:     model.QuizTypeMCQ,
		TotalPoints:  100,
		PassingScore: 70,
	}
	prompts := []string{"「あ」の読み方は?", "「い」の読み方は?", "「う」の読み方は?", "「え」の読み方は?"}
	for i, p := range prompts {
		q.Questions = append(q.Questions, model.Question{
			QuestionIndex: i,
			Question:      p,
			Points:        25,
			Explanation:   "ローマ字を確認しましょう。",
			Options: []model.QuestionOption{
				{Text: "ka"},
				{Text: "correct", Correct: true},
				{Text: "sa"},
			},
		})
	}
	return q
}

// OpenEndedQuiz builds (without saving) a 20-point text quiz.
func OpenEndedQuiz(courseID uint, moduleIdx, itemIdx int) model.Quiz {
	return model.Quiz{
		CourseID:         courseID,
		ModuleIndex:      moduleIdx,
		ItemIndex:        itemIdx,
		Title:            "自己紹介",
		QuizType:         model.QuizTypeOpenEnded,
		TotalPoints:      20,
		PassingScore:     60,
		Question:         "日本語で自己紹介を書いてください。",
		AcceptTextAnswer: true,
	}
}

// SaveQuiz inserts a quiz built by MCQQuiz or OpenEndedQuiz.
func SaveQuiz(t *testing.T, db *gorm.DB, q model.Quiz) model.Quiz {
	t.Helper()
	if err := db.Omit("Course").Create(&q).Error; err != nil {
		t.Fatalf("SaveQuiz() failed: %v", err)
	}
	return q
}
