package server

import (
	"io"
	"net/http"
	"time"

	"github.com/formgate/formgate/internal/api/handlers"
	"github.com/formgate/formgate/internal/api/middleware"
	"github.com/formgate/formgate/internal/api/validation"
	"github.com/formgate/formgate/internal/config"
	"github.com/formgate/formgate/internal/ratelimit"
	"github.com/formgate/formgate/internal/server/routes"
	"github.com/formgate/formgate/internal/service"
	"github.com/formgate/formgate/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	config *config.Config
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) *Server {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Disable Gin's default logger entirely, we use our own
	gin.DisableConsoleColor()
	gin.DefaultWriter = io.Discard

	router := gin.New()
	router.Use(gin.Recovery())

	// Requests with the wrong method terminate here, before any field
	// parsing happens
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		utils.HandleFailure(c, http.StatusMethodNotAllowed, "Method not allowed.")
	})
	router.NoRoute(func(c *gin.Context) {
		utils.HandleFailure(c, http.StatusNotFound, "Not found.")
	})

	return &Server{
		router: router,
		config: cfg,
	}
}

// Init wires middleware, services and routes
func (s *Server) Init() {
	cfg := s.config

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}

	// Global middleware
	s.router.Use(middleware.CORS(cfg.AllowedOrigins))
	s.router.Use(middleware.SecurityHeaders())
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.RequestLogger())

	// Session attempt store lives twice as long as the window so pruned
	// sessions cannot resurrect old attempts
	store := ratelimit.NewMemoryStore(2 * cfg.RateLimitWindow)
	window := ratelimit.NewSlidingWindow(store, cfg.RateLimitMax, cfg.RateLimitWindow)

	recaptcha := service.NewRecaptchaService(
		cfg.RecaptchaSecretKey,
		cfg.RecaptchaMinScore,
		cfg.RecaptchaAction,
		cfg.Hostname,
	)

	composer := service.NewComposerService(service.ComposerConfig{
		AdminEmail:       cfg.AdminEmail,
		AdminName:        cfg.AdminName,
		DefaultSubject:   cfg.DefaultSubject,
		SubjectPrefix:    cfg.SubjectPrefix,
		AutoreplyEnabled: cfg.AutoreplyEnabled,
		AutoreplySubject: cfg.AutoreplySubject,
	})

	mailer := service.NewMailerService(service.MailerConfig{
		Host:       cfg.SMTPHost,
		Port:       cfg.SMTPPort,
		Username:   cfg.SMTPUsername,
		Password:   cfg.SMTPPassword,
		Encryption: cfg.SMTPEncryption,
		FromName:   cfg.AdminName,
	})

	h := &routes.Handlers{
		Contact: handlers.NewContactHandler(window, recaptcha, service.NewDomainService(), composer, mailer),
		Health:  handlers.NewHealthHandler(),
	}

	routes.Setup(s.router, cfg, h)
}

// Start starts the server
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:         ":" + s.config.Port,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	return srv.ListenAndServe()
}
