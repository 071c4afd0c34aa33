package dto

import "time"

type ErrorResponse struct {
	Message          string   `json:"message"`
	Details          []string `json:"details,omitempty"`
	AlreadySubmitted bool     `json:"alreadySubmitted,omitempty"`
}

type OptionView struct {
	Text string `json:"text"`
}

type QuestionView struct {
	QuestionIndex int          `json:"questionIndex"`
	Question      string       `json:"question"`
	Points        float64      `json:"points"`
	Options       []OptionView `json:"options" copier:"-"`
}

// QuizView is what students see: no correct flags, no explanations.
type QuizView struct {
	ID                    uint           `json:"id"`
	CourseID              uint           `json:"courseId"`
	ModuleIndex           int            `json:"moduleIndex"`
	ItemIndex             int            `json:"itemIndex"`
	Title                 string         `json:"title"`
	QuizType              string         `json:"quizType"`
	TimeLimit             *int           `json:"timeLimit,omitempty"`
	TotalPoints           float64        `json:"totalPoints"`
	PassingScore          int            `json:"passingScore"`
	AllowMultipleAttempts bool           `json:"allowMultipleAttempts"`
	Question              string         `json:"question,omitempty"`
	QuestionFile          *string        `json:"questionFile,omitempty"`
	AcceptTextAnswer      bool           `json:"acceptTextAnswer"`
	AcceptFileUpload      bool           `json:"acceptFileUpload"`
	Questions             []QuestionView `json:"questions,omitempty" copier:"-"`
}

type SessionResponse struct {
	SessionID        string      `json:"sessionId,omitempty"`
	State            string      `json:"state"`
	AttemptNumber    int         `json:"attemptNumber,omitempty"`
	StartedAt        *time.Time  `json:"startedAt,omitempty"`
	Deadline         *time.Time  `json:"deadline,omitempty"`
	RemainingSeconds *int        `json:"remainingSeconds,omitempty"`
	Answers          map[int]int `json:"answers,omitempty"`
	TextAnswer       string      `json:"textAnswer,omitempty"`
	FileURL          string      `json:"fileUrl,omitempty"`
	Quiz             *QuizView   `json:"quiz,omitempty"`
}

type IntegrityResponse struct {
	Warning           string `json:"warning"`
	TabSwitches       int    `json:"tabSwitches"`
	ClipboardEvents   int    `json:"clipboardEvents"`
	ContextMenuEvents int    `json:"contextMenuEvents"`
}

// SubmitResponse carries the score for MCQ; open-ended submissions come back
// with status pending_grading and no score.
type SubmitResponse struct {
	Success       bool      `json:"success"`
	SubmissionID  uint      `json:"submissionId"`
	AttemptNumber int       `json:"attemptNumber"`
	Status        string    `json:"status"`
	Score         *float64  `json:"score,omitempty"`
	TotalPoints   float64   `json:"totalPoints"`
	Percentage    *int      `json:"percentage,omitempty"`
	Passed        *bool     `json:"passed,omitempty"`
	Grade         string    `json:"grade,omitempty"`
	Answered      int       `json:"answered"`
	TimeSpent     int       `json:"timeSpent"`
	AutoSubmitted bool      `json:"autoSubmitted"`
	SubmittedAt   time.Time `json:"submittedAt"`
}

type QuestionReview struct {
	QuestionIndex  int          `json:"questionIndex"`
	Question       string       `json:"question"`
	Options        []OptionView `json:"options"`
	SelectedOption *int         `json:"selectedOption"`
	CorrectOption  *int         `json:"correctOption,omitempty"`
	IsCorrect      *bool        `json:"isCorrect,omitempty"`
	Points         float64      `json:"points"`
	Earned         *float64     `json:"earned,omitempty"`
	Explanation    string       `json:"explanation,omitempty"`
}

type SubmissionResult struct {
	ID            uint             `json:"id"`
	AttemptNumber int              `json:"attemptNumber"`
	Status        string           `json:"status"`
	StartedAt     time.Time        `json:"startedAt"`
	SubmittedAt   time.Time        `json:"submittedAt"`
	TimeSpent     int              `json:"timeSpent"`
	AutoSubmitted bool             `json:"autoSubmitted"`
	Score         *float64         `json:"score,omitempty"`
	TotalPoints   float64          `json:"totalPoints"`
	Percentage    *int             `json:"percentage,omitempty"`
	Passed        *bool            `json:"passed,omitempty"`
	Grade         string           `json:"grade,omitempty"`
	Answers       map[int]int      `json:"answers,omitempty"`
	TextAnswer    string           `json:"textAnswer,omitempty"`
	FileURL       string           `json:"fileUrl,omitempty"`
	Feedback      string           `json:"feedback,omitempty"`
	GradedAt      *time.Time       `json:"gradedAt,omitempty"`
	Expanded      bool             `json:"expanded"`
	Review        []QuestionReview `json:"review,omitempty"`
}

type ResultsResponse struct {
	Quiz        QuizView           `json:"quiz"`
	ShowAnswers bool               `json:"showAnswers"`
	Submissions []SubmissionResult `json:"submissions"`
}

type GradingEntry struct {
	ID              uint       `json:"id"`
	StudentID       string     `json:"studentId"`
	StudentEmail    string     `json:"studentEmail,omitempty"`
	AttemptNumber   int        `json:"attemptNumber"`
	TextAnswer      string     `json:"textAnswer,omitempty"`
	FileURL         string     `json:"fileUrl,omitempty"`
	SubmittedAt     time.Time  `json:"submittedAt"`
	TimeSpent       int        `json:"timeSpent"`
	AutoSubmitted   bool       `json:"autoSubmitted"`
	TabSwitches     int        `json:"tabSwitches"`
	ClipboardEvents int        `json:"clipboardEvents"`
	GradedScore     *float64   `json:"gradedScore,omitempty"`
	Percentage      int        `json:"percentage"`
	Passed          bool       `json:"passed"`
	Feedback        string     `json:"feedback,omitempty"`
	GradedAt        *time.Time `json:"gradedAt,omitempty"`
	GradedBy        *string    `json:"gradedBy,omitempty"`
}

type GradingQueueResponse struct {
	Quiz     QuizView       `json:"quiz"`
	Ungraded []GradingEntry `json:"ungraded"`
	Graded   []GradingEntry `json:"graded"`
}

type GradeEventDTO struct {
	ID         uint      `json:"id"`
	Score      float64   `json:"score"`
	Percentage int       `json:"percentage"`
	Passed     bool      `json:"passed"`
	Feedback   string    `json:"feedback,omitempty"`
	GradedBy   string    `json:"gradedBy"`
	GradedAt   time.Time `json:"gradedAt"`
}

type GradeSuggestionResponse struct {
	SubmissionID uint    `json:"submissionId"`
	Score        float64 `json:"score"`
	TotalPoints  float64 `json:"totalPoints"`
	Feedback     string  `json:"feedback"`
}
