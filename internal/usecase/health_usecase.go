package usecase

import (
	"context"
	"time"
)

// HealthStatus reports readiness of the intake pipeline's dependencies.
// It never includes configuration values.
type HealthStatus struct {
	Status         string `json:"status"`
	Email          string `json:"email"`
	RateLimitStore string `json:"rateLimitStore"`
}

type HealthUsecase interface {
	Check(ctx context.Context) HealthStatus
}

// StorePinger checks the shared rate limit store. Nil means the in-process store is used.
type StorePinger func(ctx context.Context) error

type healthUsecase struct {
	mailer Mailer
	ping   StorePinger
}

func NewHealthUsecase(mailer Mailer, ping StorePinger) HealthUsecase {
	return &healthUsecase{mailer: mailer, ping: ping}
}

func (u *healthUsecase) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{Status: "ok", Email: "configured", RateLimitStore: "memory"}

	if len(u.mailer.MissingConfig()) > 0 {
		status.Email = "missing"
		if u.mailer.DevFallback() {
			status.Email = "dev_fallback"
		} else {
			status.Status = "degraded"
		}
	}

	if u.ping != nil {
		ctx, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()
		status.RateLimitStore = "redis"
		if err := u.ping(ctx); err != nil {
			// Submissions keep working on the in-process fallback
			status.RateLimitStore = "redis_unreachable"
			status.Status = "degraded"
		}
	}

	return status
}
