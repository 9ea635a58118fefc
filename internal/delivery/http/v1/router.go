package v1

import (
	"time"

	"atlantic-drive-backend/config"
	"atlantic-drive-backend/internal/delivery/http/middleware"
	"atlantic-drive-backend/internal/domain"
	"atlantic-drive-backend/internal/usecase"
	"atlantic-drive-backend/pkg/metrics"
	"atlantic-drive-backend/pkg/ratelimit"
	"atlantic-drive-backend/pkg/submissionlog"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ContactUC domain.ContactUsecase
	EnquiryUC domain.EnquiryUsecase
	HealthUC  usecase.HealthUsecase
	// Coarse per-client flood guard in front of every route; nil disables it
	GlobalLimiter *ratelimit.Limiter
	SubmissionLog *submissionlog.Logger
	// Validate reports field errors alongside JSON type errors; defaults to domain.NewValidator
	Validate *validator.Validate
	Config   *config.Config
	// Now defaults to time.Now
	Now func() time.Time
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	production := deps.Config.IsProduction()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.AllowedOrigins, production)) // CORS must be first!
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.SecurityHeadersMiddleware(production))
	r.Use(middleware.Metrics())
	r.Use(middleware.ErrorHandler())

	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	public := r.Group("")
	NewHealthHandler(public, deps.HealthUC)

	forms := r.Group("")
	forms.Use(middleware.BodyLimit(middleware.DefaultBodyLimit))
	if deps.GlobalLimiter != nil {
		forms.Use(middleware.RateLimitMiddleware(deps.GlobalLimiter))
	}

	now := deps.Now
	if now == nil {
		now = time.Now
	}
	binder := submissionBinder{log: deps.SubmissionLog, validate: deps.Validate, now: now}
	if binder.log == nil {
		binder.log = submissionlog.New(nil, nil)
	}
	if binder.validate == nil {
		binder.validate = domain.NewValidator()
	}

	NewContactHandler(forms, deps.ContactUC, binder)
	NewEnquiryHandler(forms, deps.EnquiryUC, binder)

	return r
}
