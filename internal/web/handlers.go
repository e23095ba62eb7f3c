package web

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/abhisek/lessonlab/internal/lesson"
)

// lessonRequest is the POST /api/lesson body.
type lessonRequest struct {
	Topic       string   `json:"topic"`
	Audience    string   `json:"audience"`
	Style       string   `json:"style"`
	IncludeDemo bool     `json:"include_demo"`
	Temperature *float64 `json:"temperature"`
	Model       string   `json:"model"`
}

// lessonResponse is the POST /api/lesson success body.
type lessonResponse struct {
	RequestID string `json:"request_id"`
	*lesson.Result
}

// apiError is the POST /api/lesson failure body. Kind is one of
// "invalid_input", "transport", "parse", "schema"; Raw carries the
// offending model text on parse/schema failures so the page can show
// it for debugging.
type apiError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Raw     string `json:"raw,omitempty"`
}

func (s *Server) indexPage(c *gin.Context) {
	c.HTML(http.StatusOK, "index.tmpl", gin.H{
		"Audiences": []string{"High school", "College", "Bootcamp", "Working professionals"},
		"Styles":    []string{"Clear & practical", "Fun & analogy-driven", "Exam focused", "Story-based"},
	})
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// generateLesson runs exactly one generation per call. There is no
// server-side retry: the page's "Regenerate" button is the retry.
func (s *Server) generateLesson(c *gin.Context) {
	var req lessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": apiError{
			Kind:    "invalid_input",
			Message: "malformed request body: " + err.Error(),
		}})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.requestTimeout)
	defer cancel()

	result, err := s.service.Generate(ctx, lesson.GenerateInput{
		Topic:       req.Topic,
		Audience:    req.Audience,
		Style:       req.Style,
		IncludeDemo: req.IncludeDemo,
		Temperature: req.Temperature,
		Model:       req.Model,
	})
	if err != nil {
		status, body := mapError(err)
		s.log.Warnw("lesson generation failed",
			"kind", body.Kind,
			"error", err.Error(),
		)
		c.JSON(status, gin.H{"error": body})
		return
	}

	c.JSON(http.StatusOK, lessonResponse{
		RequestID: uuid.NewString(),
		Result:    result,
	})
}

// mapError translates the core's typed failures into HTTP responses.
func mapError(err error) (int, apiError) {
	var invalid *lesson.ErrInvalidInput
	if errors.As(err, &invalid) {
		return http.StatusBadRequest, apiError{
			Kind:    "invalid_input",
			Message: invalid.Reason,
		}
	}

	var parse *lesson.ErrParse
	if errors.As(err, &parse) {
		return http.StatusBadGateway, apiError{
			Kind:    "parse",
			Message: parse.Error(),
			Raw:     parse.Raw,
		}
	}

	var schema *lesson.ErrSchemaViolation
	if errors.As(err, &schema) {
		return http.StatusBadGateway, apiError{
			Kind:    "schema",
			Message: schema.Error(),
			Field:   schema.Field,
			Raw:     schema.Raw,
		}
	}

	var transport *lesson.ErrTransport
	if errors.As(err, &transport) {
		return http.StatusBadGateway, apiError{
			Kind:    "transport",
			Message: transport.Error(),
		}
	}

	return http.StatusInternalServerError, apiError{
		Kind:    "transport",
		Message: err.Error(),
	}
}
