package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/lshigami/Nihongo/config"
	"github.com/lshigami/Nihongo/internal/model"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// GeminiLLMService proposes a score and feedback for an open-ended answer.
// The suggestion is advisory; it is never stored as a grade.
type GeminiLLMService interface {
	SuggestGrade(ctx context.Context, q *model.Quiz, sub *model.Submission) (feedback string, score float64, err error)
}

type geminiLLMService struct {
	client *genai.GenerativeModel
	files  *answerFileFetcher
}

func NewGeminiLLMService(cfg *config.Config) (GeminiLLMService, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. Grading suggestions are disabled.")
		return &geminiLLMService{client: nil}, nil
	}
	if len(cfg.Storage.AllowedHosts) == 0 {
		log.Warn().Msg("STORAGE_ALLOWED_HOSTS is not set. Uploaded answer files are not sent to Gemini.")
	}
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	return &geminiLLMService{
		client: client.GenerativeModel("gemini-1.5-flash"),
		files:  newAnswerFileFetcher(cfg.Storage, nil),
	}, nil
}

// parseScoreAndFeedback expects "Score: <n>" followed by "Feedback: <text>".
func parseScoreAndFeedback(rawResponse string) (scoreStr string, feedbackStr string, err error) {
	scorePrefix := "Score:"
	feedbackPrefix := "Feedback:"

	scoreIndex := strings.Index(rawResponse, scorePrefix)
	feedbackIndex := strings.Index(rawResponse, feedbackPrefix)

	if scoreIndex == -1 {
		return "", rawResponse, fmt.Errorf("response does not contain 'Score:' prefix")
	}

	endOfScoreLine := strings.Index(rawResponse[scoreIndex:], "\n")
	if endOfScoreLine == -1 {
		scoreStr = strings.TrimSpace(rawResponse[scoreIndex+len(scorePrefix):])
	} else {
		scoreStr = strings.TrimSpace(rawResponse[scoreIndex+len(scorePrefix) : scoreIndex+endOfScoreLine])
	}

	switch {
	case feedbackIndex > scoreIndex:
		feedbackStr = strings.TrimSpace(rawResponse[feedbackIndex+len(feedbackPrefix):])
	case endOfScoreLine != -1 && len(rawResponse) > scoreIndex+endOfScoreLine+1:
		feedbackStr = strings.TrimSpace(rawResponse[scoreIndex+endOfScoreLine+1:])
	default:
		feedbackStr = ""
	}

	// "Score: 15 / 20" -> "15"
	if parts := strings.Fields(scoreStr); len(parts) > 0 {
		scoreStr = strings.TrimSuffix(parts[0], "/")
	}
	return scoreStr, feedbackStr, nil
}

func buildGradingPrompt(q *model.Quiz, sub *model.Submission, withImage bool) string {
	var b strings.Builder
	b.WriteString("You are an experienced Japanese language teacher grading a student's open-ended quiz answer.\n")
	b.WriteString("Evaluate grammar, vocabulary, correct use of kana and kanji, and how well the answer fulfils the task.\n\n")
	b.WriteString("Task:\n---\n")
	b.WriteString(q.Question)
	b.WriteString("\n---\n\n")

	if strings.TrimSpace(sub.TextAnswer) != "" {
		b.WriteString("Student's answer:\n---\n")
		b.WriteString(sub.TextAnswer)
		b.WriteString("\n---\n\n")
	}
	if withImage {
		b.WriteString("The student also uploaded the image attached above as part of the answer.\n\n")
	} else if sub.FileURL != "" {
		b.WriteString("The student uploaded a file that could not be attached; grade the text only.\n\n")
	}

	fmt.Fprintf(&b, `Format your response strictly as:
Score: [a number from 0 to %.1f]
Feedback:
[Constructive feedback in English. Point out concrete mistakes, show the corrected Japanese, and name one thing done well.]
`, q.TotalPoints)
	return b.String()
}

func (s *geminiLLMService) SuggestGrade(ctx context.Context, q *model.Quiz, sub *model.Submission) (string, float64, error) {
	if s.client == nil {
		return "", 0, fmt.Errorf("gemini client not initialized")
	}

	var parts []genai.Part
	withImage := false
	if sub.FileURL != "" && q.AcceptFileUpload {
		data, mimeType, err := s.files.Fetch(ctx, sub.FileURL)
		if err != nil {
			log.Warn().Err(err).Uint("submissionID", sub.ID).Msg("Answer file not attached to grading prompt")
		} else {
			parts = append(parts, genai.ImageData(strings.TrimPrefix(mimeType, "image/"), data))
			withImage = true
		}
	}
	parts = append(parts, genai.Text(buildGradingPrompt(q, sub, withImage)))

	resp, err := s.client.GenerateContent(ctx, parts...)
	if err != nil {
		log.Error().Err(err).Uint("submissionID", sub.ID).Msg("Gemini API error during grading suggestion")
		return "", 0, fmt.Errorf("gemini request failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", 0, fmt.Errorf("gemini returned no content")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		}
	}

	scoreStr, feedback, err := parseScoreAndFeedback(text.String())
	if err != nil {
		log.Warn().Err(err).Str("rawResponse", text.String()).Msg("Failed to parse grading suggestion")
		return "", 0, err
	}
	score, err := strconv.ParseFloat(scoreStr, 64)
	if err != nil {
		return feedback, 0, fmt.Errorf("could not parse score value %q from AI response: %w", scoreStr, err)
	}
	return feedback, clampScore(score, q.TotalPoints), nil
}

func clampScore(score, max float64) float64 {
	if score > max {
		return max
	}
	if score < 0 {
		return 0
	}
	return score
}
