package api

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/cetmentor/cetmentor/internal/advisor"
	"github.com/cetmentor/cetmentor/internal/ai"
	"github.com/cetmentor/cetmentor/internal/dataset"
	"github.com/cetmentor/cetmentor/internal/feedback"
)

type Server struct {
	Echo     *echo.Echo
	Table    *dataset.Table
	Advisor  *advisor.Advisor
	AI       *ai.Client
	Feedback *feedback.Logger
	DataFile string
}

var (
	adminSecretOnce    sync.Once
	adminSecretRuntime string
	adminSecretErr     error
)

func NewServer(table *dataset.Table, adv *advisor.Advisor, aiClient *ai.Client, fb *feedback.Logger, dataFile string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// CORS: allow frontend origins from env or default to localhost
	allowedOrigins := []string{"http://localhost:4200"}
	if extra := os.Getenv("CORS_ORIGINS"); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			o = strings.TrimSpace(o)
			if o != "" {
				allowedOrigins = append(allowedOrigins, o)
			}
		}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, "X-Admin-Secret"},
	}))

	s := &Server{
		Echo:     e,
		Table:    table,
		Advisor:  adv,
		AI:       aiClient,
		Feedback: fb,
		DataFile: dataFile,
	}

	s.routes()
	return s
}

func (s *Server) routes() {
	s.Echo.GET("/health", s.handleHealth)

	api := s.Echo.Group("/api/v1")
	api.POST("/suggest", s.handleSuggest)
	api.POST("/predict", s.handlePredict)
	api.POST("/chat", s.handleChat)
	api.POST("/feedback", s.handleFeedback)

	admin := api.Group("/admin")
	admin.Use(s.adminMiddleware)
	admin.POST("/reload", s.handleReload)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"records": s.Table.Len(),
	})
}

type suggestRequest struct {
	Rank interface{} `json:"rank"`
}

func (s *Server) handleSuggest(c echo.Context) error {
	var req suggestRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errBody("Invalid request body."))
	}

	rank, ok := toInt(req.Rank)
	if !ok {
		return c.JSON(http.StatusBadRequest, errBody("Invalid rank format. Please enter a number."))
	}

	sugg, err := s.Advisor.Suggest(rank)
	if err != nil {
		return s.adviceError(c, err, "Please provide a valid rank.")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":     true,
		"rank":        rank,
		"percentile":  sugg.UserPercentile,
		"suggestions": sugg,
	})
}

type predictRequest struct {
	Percentile interface{} `json:"percentile"`
	College    string      `json:"college"`
}

func (s *Server) handlePredict(c echo.Context) error {
	var req predictRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errBody("Invalid request body."))
	}

	percentile, ok := toFloat(req.Percentile)
	if !ok {
		return c.JSON(http.StatusBadRequest, errBody("Invalid percentile. Please enter a number."))
	}

	pred, err := s.Advisor.Predict(percentile, req.College)
	if err != nil {
		return s.adviceError(c, err, "Please provide a valid percentile and college name.")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":           true,
		"user_percentile":   percentile,
		"college":           pred.College,
		"branch":            pred.Branch,
		"cutoff_percentile": pred.CutoffPercentile,
		"admission_chance":  pred.AdmissionChance,
	})
}

// adviceError maps advisor sentinel errors onto HTTP responses.
func (s *Server) adviceError(c echo.Context, err error, invalidMsg string) error {
	switch {
	case errors.Is(err, advisor.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, errBody(invalidMsg))
	case errors.Is(err, advisor.ErrNoData):
		return c.JSON(http.StatusServiceUnavailable, errBody("No cutoff data loaded. Run the scraper first."))
	case errors.Is(err, advisor.ErrNotFound):
		return c.JSON(http.StatusNotFound, errBody(err.Error()))
	default:
		c.Logger().Errorf("advisor error: %v", err)
		return c.JSON(http.StatusInternalServerError, errBody("An internal error occurred."))
	}
}

type chatRequest struct {
	Message string `json:"message"`
}

func (s *Server) handleChat(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errBody("Invalid request body."))
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return c.JSON(http.StatusBadRequest, errBody("Message must not be empty."))
	}

	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set("Cache-Control", "no-cache")
	resp.Header().Set("Connection", "keep-alive")
	resp.WriteHeader(http.StatusOK)

	if s.AI == nil {
		writeSSE(resp, map[string]string{"error": "AI client not initialized. Check API key."})
		return nil
	}

	messages := []ai.Message{{Role: "system", Content: ai.SystemPrompt(time.Now())}}
	if block := ai.ContextBlock(s.Advisor.SearchContext(message, 5)); block != "" {
		messages = append(messages, ai.Message{Role: "system", Content: block})
	}
	messages = append(messages, ai.Message{Role: "user", Content: message})

	ctx := c.Request().Context()
	err := s.AI.StreamCompletion(ctx, messages, func(content string) error {
		return writeSSE(resp, map[string]string{"content": content})
	})
	if err != nil && ctx.Err() == nil {
		c.Logger().Errorf("chat stream failed: %v", err)
		writeSSE(resp, map[string]string{"error": "Sorry, I am having trouble connecting to my brain right now. Please try again later."})
	}

	return nil
}

// writeSSE frames one payload as a server-sent event and flushes it.
func writeSSE(resp *echo.Response, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(resp, "data: %s\n\n", data); err != nil {
		return err
	}
	resp.Flush()
	return nil
}

func (s *Server) handleFeedback(c echo.Context) error {
	var entry feedback.Entry
	if err := c.Bind(&entry); err != nil {
		return c.JSON(http.StatusBadRequest, errBody("Invalid request body."))
	}

	entryID, err := s.Feedback.Record(entry)
	if err != nil {
		c.Logger().Errorf("failed to record feedback: %v", err)
		return c.JSON(http.StatusInternalServerError, errBody("Failed to save feedback."))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":  true,
		"entry_id": entryID,
	})
}

// handleReload re-reads the dataset file and swaps it in without a
// restart. Admin only.
func (s *Server) handleReload(c echo.Context) error {
	records, err := dataset.LoadFile(s.DataFile)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errBody(err.Error()))
	}

	s.Table.Swap(records)
	log.Printf("Dataset reloaded: %d records from %s", len(records), s.DataFile)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"records": len(records),
	})
}

func (s *Server) Start(port string) error {
	return s.Echo.Start(":" + port)
}

func errBody(msg string) map[string]interface{} {
	return map[string]interface{}{"success": false, "error": msg}
}

// toInt accepts JSON numbers and numeric strings.
func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

// toFloat accepts JSON numbers and numeric strings.
func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func (s *Server) adminMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		secret, err := adminSecret()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, errBody("Server admin configuration error"))
		}

		authHeader := c.Request().Header.Get("Authorization")
		adminHeader := c.Request().Header.Get("X-Admin-Secret")

		if adminHeader == secret {
			return next(c)
		}
		if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
			if authHeader[7:] == secret {
				return next(c)
			}
		}

		return c.JSON(http.StatusUnauthorized, errBody("Unauthorized admin access"))
	}
}

func adminSecret() (string, error) {
	adminSecretOnce.Do(func() {
		secret := strings.TrimSpace(os.Getenv("ADMIN_SECRET"))
		if secret != "" {
			adminSecretRuntime = secret
			return
		}

		buf := make([]byte, 48)
		if _, err := rand.Read(buf); err != nil {
			adminSecretErr = fmt.Errorf("failed to generate ADMIN_SECRET fallback: %w", err)
			return
		}

		adminSecretRuntime = base64.RawURLEncoding.EncodeToString(buf)
		log.Print("ADMIN_SECRET is not set; using ephemeral in-memory fallback secret")
	})

	if adminSecretErr != nil {
		return "", adminSecretErr
	}
	if adminSecretRuntime == "" {
		return "", fmt.Errorf("admin secret unavailable")
	}

	return adminSecretRuntime, nil
}
