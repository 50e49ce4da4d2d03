// Package server exposes document generation and validation over HTTP.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/rezonia/ubl-generator/internal/model"
	"github.com/rezonia/ubl-generator/internal/validator"
	"github.com/rezonia/ubl-generator/pkg/ubllib"
)

// Config holds server configuration
type Config struct {
	Address         string
	SchemaDir       string
	Schematron      bool
	SchematronImage string
	ValidateTimeout time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	Debug           bool
}

// Server represents the HTTP API server. The XSD schema handlers are shared
// across requests; the schematron stage spawns one container per request.
type Server struct {
	config  *Config
	router  *gin.Engine
	schemas validator.SchemaValidator
	runner  validator.Runner
}

// NewServer creates a new API server
func NewServer(config *Config) *Server {
	var runner validator.Runner
	if config.Schematron {
		runner = validator.NewDockerRunner(config.SchematronImage)
	}
	return NewServerWithStages(config, validator.NewXSDValidator(config.SchemaDir), runner)
}

// NewServerWithStages wires explicit validation stages, used by tests
func NewServerWithStages(config *Config, schemas validator.SchemaValidator, runner validator.Runner) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger())

	s := &Server{
		config:  config,
		router:  router,
		schemas: schemas,
		runner:  runner,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", s.handleHealth)

	// API v1
	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/generate/invoice", s.handleGenerate(model.TypeInvoice))
		v1.POST("/generate/creditnote", s.handleGenerate(model.TypeCreditNote))
		v1.POST("/validate", s.handleValidate)
	}
}

// Run starts the HTTP server
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	return srv.ListenAndServe()
}

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

// requestLogger emits one zerolog event per request
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleGenerate(docType model.DocumentType) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := c.GetRawData()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
			return
		}
		if len(body) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "empty request body"})
			return
		}

		req, err := ubllib.ParseDocumentJSON(body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		doc, err := req.Build(docType)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		xml, err := ubllib.Build(doc)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		c.Data(http.StatusOK, "application/xml", xml)
	}
}

func (s *Server) handleValidate(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}
	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty request body"})
		return
	}

	docType := model.TypeInvoice
	switch c.Query("type") {
	case "", "invoice":
	case "creditnote":
		docType = model.TypeCreditNote
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be invoice or creditnote"})
		return
	}
	belgian := c.Query("belgian") == "true"

	v := validator.NewWithStages(s.schemas, s.runner, validator.Options{
		Schematron: s.config.Schematron,
		Belgian:    belgian,
		Timeout:    s.config.ValidateTimeout,
	})

	report, err := v.Validate(c.Request.Context(), body, docType)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	errs := findingStrings(report.Fatal())
	c.JSON(http.StatusOK, ValidationResponse{
		Valid:    len(errs) == 0,
		Errors:   errs,
		Warnings: findingStrings(report.Warnings()),
	})
}

func findingStrings(findings []validator.Finding) []string {
	out := make([]string, 0, len(findings))
	for _, f := range findings {
		out = append(out, f.String())
	}
	return out
}
