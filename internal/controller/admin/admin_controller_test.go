package admin

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Nihongo/internal/dto"
	"github.com/lshigami/Nihongo/internal/identity"
	"github.com/lshigami/Nihongo/internal/quiz"
	"github.com/lshigami/Nihongo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAdminQuizService struct {
	err error
}

func (s *stubAdminQuizService) CreateCourse(_ context.Context, req dto.CourseCreateDTO) (*dto.CourseResponseDTO, error) {
	return &dto.CourseResponseDTO{ID: 1, Title: req.Title, ShowAnswers: req.ShowAnswers}, s.err
}

func (s *stubAdminQuizService) UpsertQuiz(_ context.Context, req dto.QuizUpsertDTO) (*dto.QuizKeyDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.QuizKeyDTO{ID: 3, CourseID: req.CourseID, QuizType: req.QuizType}, nil
}

func (s *stubAdminQuizService) GetQuizWithAnswers(_ context.Context, ref dto.QuizRef) (*dto.QuizKeyDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.QuizKeyDTO{ID: 3, CourseID: ref.CourseID}, nil
}

type stubGradingService struct {
	grader identity.Identity
	req    dto.GradeSubmissionRequest
	err    error
}

func (s *stubGradingService) ListSubmissions(context.Context, dto.QuizRef) (*dto.GradingQueueResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.GradingQueueResponse{Ungraded: []dto.GradingEntry{{ID: 4}}, Graded: []dto.GradingEntry{}}, nil
}

func (s *stubGradingService) Grade(_ context.Context, grader identity.Identity, req dto.GradeSubmissionRequest) (*dto.GradingEntry, error) {
	s.grader, s.req = grader, req
	if s.err != nil {
		return nil, s.err
	}
	return &dto.GradingEntry{ID: req.SubmissionID, GradedScore: req.Score}, nil
}

func (s *stubGradingService) History(_ context.Context, id uint) ([]dto.GradeEventDTO, error) {
	return []dto.GradeEventDTO{{ID: 2, Score: 15}, {ID: 1, Score: 12}}, s.err
}

func (s *stubGradingService) Suggest(_ context.Context, req dto.SuggestGradeRequest) (*dto.GradeSuggestionResponse, error) {
	return &dto.GradeSuggestionResponse{SubmissionID: req.SubmissionID, Score: 17, TotalPoints: 20}, s.err
}

type harness struct {
	router       *gin.Engine
	adminToken   string
	studentToken string
	quizzes      *stubAdminQuizService
	grading      *stubGradingService
}

func newHarness(t *testing.T) *harness {
	r, auth := testutil.NewRouter(t)
	h := &harness{
		router:       r,
		adminToken:   testutil.Token(t, "teacher-1", "sensei@example.com", identity.RoleAdmin),
		studentToken: testutil.Token(t, "student-1", "hana@example.com", identity.RoleStudent),
		quizzes:      &stubAdminQuizService{},
		grading:      &stubGradingService{},
	}
	adminOnly := []gin.HandlerFunc{auth.RequireUser(), auth.RequireRole(identity.RoleAdmin)}
	NewAdminQuizController(h.quizzes).RegisterRoutes(r.Group("/api/admin", adminOnly...))
	NewGradingController(h.grading).RegisterRoutes(r.Group("/api/quiz/grade", adminOnly...))
	return h
}

func TestAdminRoutesRejectStudents(t *testing.T) {
	h := newHarness(t)
	for _, target := range []string{"/api/quiz/grade?courseId=1&moduleIndex=0&itemIndex=1", "/api/admin/quizzes?courseId=1&moduleIndex=0&itemIndex=1"} {
		w := testutil.Do(t, h.router, http.MethodGet, target, h.studentToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code, target)
	}
}

func TestUpsertQuiz(t *testing.T) {
	h := newHarness(t)
	body := map[string]interface{}{
		"courseId": 1, "moduleIndex": 0, "itemIndex": 1,
		"title": "ひらがな", "quizType": "mcq", "passingScore": 70,
		"questions": []map[string]interface{}{
			{"questionIndex": 0, "question": "あ", "points": 10, "options": []map[string]interface{}{{"text": "a", "correct": true}, {"text": "i"}}},
		},
	}

	w := testutil.Do(t, h.router, http.MethodPut, "/api/admin/quizzes", h.adminToken, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	h.quizzes.err = &quiz.DefinitionError{Problems: []string{"question 0: exactly one option must be correct, found 0"}}
	w = testutil.Do(t, h.router, http.MethodPut, "/api/admin/quizzes", h.adminToken, body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp dto.ErrorResponse
	testutil.Decode(t, w, &resp)
	assert.Len(t, resp.Details, 1)

	h.quizzes.err = quiz.ErrCourseNotFound
	w = testutil.Do(t, h.router, http.MethodPut, "/api/admin/quizzes", h.adminToken, body)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateCourse(t *testing.T) {
	h := newHarness(t)
	w := testutil.Do(t, h.router, http.MethodPost, "/api/admin/courses", h.adminToken, map[string]interface{}{"title": "N5", "showAnswers": true})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = testutil.Do(t, h.router, http.MethodPost, "/api/admin/courses", h.adminToken, map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGradeSubmission(t *testing.T) {
	h := newHarness(t)
	body := map[string]interface{}{"courseId": 1, "moduleIndex": 0, "itemIndex": 1, "submissionId": 4, "score": 15, "feedback": "よくできました"}

	w := testutil.Do(t, h.router, http.MethodPut, "/api/quiz/grade", h.adminToken, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "teacher-1", h.grading.grader.UserID)
	require.NotNil(t, h.grading.req.Score)
	assert.Equal(t, 15.0, *h.grading.req.Score)

	delete(body, "score")
	w = testutil.Do(t, h.router, http.MethodPut, "/api/quiz/grade", h.adminToken, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body["score"] = 25
	h.grading.err = quiz.ErrScoreOutOfRange
	w = testutil.Do(t, h.router, http.MethodPut, "/api/quiz/grade", h.adminToken, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGradingQueueHistoryAndSuggest(t *testing.T) {
	h := newHarness(t)

	w := testutil.Do(t, h.router, http.MethodGet, "/api/quiz/grade?courseId=1&moduleIndex=0&itemIndex=1", h.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var queue dto.GradingQueueResponse
	testutil.Decode(t, w, &queue)
	assert.Len(t, queue.Ungraded, 1)
	assert.Empty(t, queue.Graded)

	w = testutil.Do(t, h.router, http.MethodGet, "/api/quiz/grade/history?submissionId=4", h.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var events []dto.GradeEventDTO
	testutil.Decode(t, w, &events)
	assert.Len(t, events, 2)

	w = testutil.Do(t, h.router, http.MethodPost, "/api/quiz/grade/suggest", h.adminToken, map[string]interface{}{"submissionId": 4})
	require.Equal(t, http.StatusOK, w.Code)

	h.grading.err = quiz.ErrNotGradable
	w = testutil.Do(t, h.router, http.MethodGet, "/api/quiz/grade?courseId=1&moduleIndex=0&itemIndex=1", h.adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
