package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/lshigami/Nihongo/internal/dto"
	"github.com/lshigami/Nihongo/internal/identity"
	"github.com/lshigami/Nihongo/internal/quiz"
	"github.com/rs/zerolog/log"
)

// statusOf maps domain errors onto HTTP status codes. Anything unknown is a 500.
func statusOf(err error) int {
	switch {
	case errors.Is(err, quiz.ErrCourseNotFound),
		errors.Is(err, quiz.ErrQuizNotFound),
		errors.Is(err, quiz.ErrSubmissionNotFound),
		errors.Is(err, quiz.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, quiz.ErrAlreadySubmitted),
		errors.Is(err, quiz.ErrSubmissionPending),
		errors.Is(err, quiz.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, quiz.ErrTimeLimitExceeded):
		return http.StatusForbidden
	case errors.Is(err, quiz.ErrQuizTypeMismatch),
		errors.Is(err, quiz.ErrEmptySubmission),
		errors.Is(err, quiz.ErrInvalidAnswer),
		errors.Is(err, quiz.ErrScoreOutOfRange),
		errors.Is(err, quiz.ErrNotGradable),
		errors.Is(err, quiz.ErrInvalidDefinition):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err as a dto.ErrorResponse. Internal errors are logged
// with the handler name and hidden from the client.
func RespondError(ctx *gin.Context, handler string, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("handler", handler).Str("path", ctx.Request.URL.Path).Msg("Request failed")
		ctx.JSON(status, dto.ErrorResponse{Message: "Internal server error"})
		return
	}

	log.Warn().Err(err).Str("handler", handler).Int("status", status).Msg("Request rejected")
	resp := dto.ErrorResponse{Message: err.Error()}
	if errors.Is(err, quiz.ErrAlreadySubmitted) {
		resp.AlreadySubmitted = true
	}
	var defErr *quiz.DefinitionError
	if errors.As(err, &defErr) {
		resp.Message = "Invalid quiz definition"
		resp.Details = defErr.Problems
	}
	ctx.JSON(status, resp)
}

// RespondBindError reports a request that failed binding or validation.
func RespondBindError(ctx *gin.Context, handler string, err error) {
	log.Warn().Err(err).Str("handler", handler).Msg("Failed to bind request")
	details := []string{err.Error()}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details = details[:0]
		for _, fe := range verrs {
			details = append(details, fe.Field()+" failed on '"+fe.Tag()+"'")
		}
	}
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request", Details: details})
}

// CurrentUser returns the authenticated caller, aborting with 401 when the
// route is not behind the auth middleware.
func CurrentUser(ctx *gin.Context) (identity.Identity, bool) {
	who, ok := identity.FromContext(ctx.Request.Context())
	if !ok {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authentication required"})
		return identity.Identity{}, false
	}
	return who, true
}
