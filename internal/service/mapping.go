package service

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/Nihongo/internal/dto"
	"github.com/lshigami/Nihongo/internal/model"
	"github.com/lshigami/Nihongo/internal/quiz"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// notFound swaps gorm's not-found error for the domain sentinel.
func notFound(err error, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

func toDefinition(q *model.Quiz) quiz.Definition {
	def := quiz.Definition{
		Type:                  quiz.Type(q.QuizType),
		TimeLimit:             q.TimeLimit,
		TotalPoints:           q.TotalPoints,
		PassingScore:          q.PassingScore,
		AllowMultipleAttempts: q.AllowMultipleAttempts,
		AcceptTextAnswer:      q.AcceptTextAnswer,
		AcceptFileUpload:      q.AcceptFileUpload,
	}
	for _, mq := range q.Questions {
		question := quiz.Question{
			Index:       mq.QuestionIndex,
			Text:        mq.Question,
			Points:      mq.Points,
			Explanation: mq.Explanation,
		}
		for _, o := range mq.Options {
			question.Options = append(question.Options, quiz.Option{Text: o.Text, Correct: o.Correct})
		}
		def.Questions = append(def.Questions, question)
	}
	return def
}

// toQuizView strips the answer key.
func toQuizView(q *model.Quiz) (dto.QuizView, error) {
	var view dto.QuizView
	if err := copier.Copy(&view, q); err != nil {
		log.Error().Err(err).Uint("quizID", q.ID).Msg("Failed to copy Quiz model to QuizView")
		return view, fmt.Errorf("error preparing quiz response: %w", err)
	}
	for _, mq := range q.Questions {
		qv := dto.QuestionView{QuestionIndex: mq.QuestionIndex, Question: mq.Question, Points: mq.Points}
		for _, o := range mq.Options {
			qv.Options = append(qv.Options, dto.OptionView{Text: o.Text})
		}
		view.Questions = append(view.Questions, qv)
	}
	return view, nil
}

func toQuizKey(q *model.Quiz) (dto.QuizKeyDTO, error) {
	var key dto.QuizKeyDTO
	if err := copier.Copy(&key, q); err != nil {
		log.Error().Err(err).Uint("quizID", q.ID).Msg("Failed to copy Quiz model to QuizKeyDTO")
		return key, fmt.Errorf("error preparing quiz response: %w", err)
	}
	for _, mq := range q.Questions {
		qk := dto.QuestionKeyDTO{QuestionIndex: mq.QuestionIndex, Question: mq.Question, Points: mq.Points, Explanation: mq.Explanation}
		for _, o := range mq.Options {
			qk.Options = append(qk.Options, dto.OptionDTO{Text: o.Text, Correct: o.Correct})
		}
		key.Questions = append(key.Questions, qk)
	}
	return key, nil
}

func fromUpsertDTO(req dto.QuizUpsertDTO) model.Quiz {
	q := model.Quiz{
		CourseID:              req.CourseID,
		ModuleIndex:           req.Module(),
		ItemIndex:             req.Item(),
		Title:                 req.Title,
		QuizType:              req.QuizType,
		TimeLimit:             req.TimeLimit,
		TotalPoints:           req.TotalPoints,
		PassingScore:          req.PassingScore,
		AllowMultipleAttempts: req.AllowMultipleAttempts,
		ShowAnswers:           req.ShowAnswers,
	}
	switch req.QuizType {
	case model.QuizTypeMCQ:
		for _, qd := range req.Questions {
			mq := model.Question{
				QuestionIndex: qd.QuestionIndex,
				Question:      qd.Question,
				Points:        qd.Points,
				Explanation:   qd.Explanation,
			}
			for _, o := range qd.Options {
				mq.Options = append(mq.Options, model.QuestionOption{Text: o.Text, Correct: o.Correct})
			}
			q.Questions = append(q.Questions, mq)
		}
	case model.QuizTypeOpenEnded:
		q.Question = req.Question
		q.QuestionFile = req.QuestionFile
		q.AcceptTextAnswer = req.AcceptTextAnswer
		q.AcceptFileUpload = req.AcceptFileUpload
	}
	return q
}

func draftOf(s *model.AttemptSession) quiz.Answers {
	return quiz.Answers{Choices: s.DraftChoices.Data(), Text: s.DraftText, FileURL: s.DraftFileURL}
}

func restoreSession(s *model.AttemptSession) *quiz.Session {
	return quiz.Restore(quiz.State(s.State), s.StartedAt, s.Deadline, draftOf(s))
}

func storeDraft(s *model.AttemptSession, draft quiz.Answers) {
	s.DraftChoices = datatypes.NewJSONType(draft.Choices)
	s.DraftText = draft.Text
	s.DraftFileURL = draft.FileURL
}
