// Package web serves the submission form and the admin dashboard. Pages are
// rendered on the server and every action goes through the feedback API.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/NomadCrew/feedback-portal/config"
	apperrors "github.com/NomadCrew/feedback-portal/errors"
	"github.com/NomadCrew/feedback-portal/logger"
	"github.com/NomadCrew/feedback-portal/middleware"
	"github.com/NomadCrew/feedback-portal/types"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	defaultRating = 3

	msgSubmitted    = "Thank you! Your feedback has been submitted successfully."
	msgUnreachable  = "Cannot reach the backend. Make sure the API server is running."
	msgEmptyReply   = "Response cannot be empty."
	msgResponseSent = "Response sent successfully!"
	msgDeleted      = "Feedback deleted."
)

// Server renders the frontend pages.
type Server struct {
	api        FeedbackAPI
	production bool
}

// NewServer creates a frontend backed by api.
func NewServer(api FeedbackAPI, cfg *config.FrontendConfig) *Server {
	return &Server{
		api:        api,
		production: cfg.IsProduction(),
	}
}

var templateFuncs = template.FuncMap{
	"stars": func(rating int) string {
		if rating < 0 {
			rating = 0
		}
		if rating > 5 {
			rating = 5
		}
		return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
	},
	"formatTime": func(t time.Time) string {
		return t.Local().Format("Jan 2, 2006 15:04")
	},
	// Highest first; the star widget is laid out right to left.
	"ratingChoices": func() []int {
		return []int{5, 4, 3, 2, 1}
	},
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
}

func parseTemplates() (*template.Template, error) {
	return template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")
}

// Router builds the gin engine serving the frontend.
func (s *Server) Router() (*gin.Engine, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.SecurityHeadersMiddleware(s.production))
	r.SetHTMLTemplate(tmpl)

	r.GET("/", s.feedbackPage)
	r.POST("/", s.submitFeedback)
	r.GET("/admin", s.adminPage)
	r.POST("/admin/respond/:id", s.respond)
	r.POST("/admin/delete/:id", s.deleteFeedback)

	return r, nil
}

type pageData struct {
	Title     string
	Active    string
	Flash     *Flash
	Feedbacks []*types.Feedback
	Stats     DashboardStats
}

func (s *Server) feedbackPage(c *gin.Context) {
	c.HTML(http.StatusOK, "feedback.html", pageData{
		Title:  "Share Your Feedback",
		Active: "feedback",
		Flash:  popFlash(c),
	})
}

func (s *Server) submitFeedback(c *gin.Context) {
	req := types.FeedbackCreate{
		Name:    strings.TrimSpace(c.PostForm("name")),
		Email:   strings.TrimSpace(c.PostForm("email")),
		Message: strings.TrimSpace(c.PostForm("message")),
		Rating:  formRating(c.PostForm("rating")),
	}

	if _, err := s.api.CreateFeedback(c.Request.Context(), req); err != nil {
		s.flashError(c, "Submission failed", err)
	} else {
		setFlash(c, FlashSuccess, msgSubmitted)
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) adminPage(c *gin.Context) {
	data := pageData{
		Title:     "Admin Dashboard",
		Active:    "admin",
		Flash:     popFlash(c),
		Feedbacks: []*types.Feedback{},
	}

	feedbacks, err := s.api.ListFeedback(c.Request.Context())
	if err != nil {
		// The list error replaces any pending notice.
		data.Flash = errorFlash("Error loading feedback", err)
		logger.GetLogger().Warnw("Failed to load feedback for dashboard", "error", err)
	} else {
		data.Feedbacks = feedbacks
	}
	data.Stats = ComputeStats(data.Feedbacks)

	c.HTML(http.StatusOK, "admin.html", data)
}

func (s *Server) respond(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	response := strings.TrimSpace(c.PostForm("response"))
	if response == "" {
		setFlash(c, FlashWarning, msgEmptyReply)
		c.Redirect(http.StatusSeeOther, "/admin")
		return
	}

	if _, err := s.api.RespondToFeedback(c.Request.Context(), id, response); err != nil {
		s.flashError(c, "Failed to send response", err)
	} else {
		setFlash(c, FlashSuccess, msgResponseSent)
	}
	c.Redirect(http.StatusSeeOther, "/admin")
}

func (s *Server) deleteFeedback(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := s.api.DeleteFeedback(c.Request.Context(), id); err != nil {
		s.flashError(c, "Failed to delete feedback", err)
	} else {
		setFlash(c, FlashSuccess, msgDeleted)
	}
	c.Redirect(http.StatusSeeOther, "/admin")
}

func (s *Server) flashError(c *gin.Context, prefix string, err error) {
	f := errorFlash(prefix, err)
	logger.GetLogger().Warnw(prefix, "error", err, "request_id", c.GetString(middleware.RequestIDKey))
	setFlash(c, f.Level, f.Message)
}

func errorFlash(prefix string, err error) *Flash {
	if apperrors.IsType(err, apperrors.TransportError) || isContextError(err) {
		return &Flash{Level: FlashDanger, Message: msgUnreachable}
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return &Flash{Level: FlashDanger, Message: fmt.Sprintf("%s: %s", prefix, appErr.Message)}
	}
	return &Flash{Level: FlashDanger, Message: fmt.Sprintf("%s: %v", prefix, err)}
}

func isContextError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}

// formRating falls back to the default star when the field is missing.
// Unparseable values are sent as 0 so the API rejects them.
func formRating(value string) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return defaultRating
	}
	rating, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return rating
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusNotFound, "404 page not found")
		return 0, false
	}
	return id, true
}
