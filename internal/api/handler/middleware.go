package handler

import (
	"context"
	"errors"
	"strings"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"

	"phasbot/internal/interfaces"
	"phasbot/internal/pkg/limiter"
	"phasbot/internal/services"

	"github.com/go-redis/redis_rate/v10"
)

type ctxKey string

var ctxKeyAuthService ctxKey = "AUTH_SERVICE"

// Authn validates the service-account bearer token and terminates
// unauthenticated requests.
func Authn(verifier interface {
	Validate(token string) (*services.ServiceClaims, error)
},
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			parts := strings.Split(header, "Bearer")
			if len(parts) != 2 {
				//nolint:errcheck
				httpx.Abort(c, errorx.Wrap(errors.New("missing access token"), errorx.Authn), -1)
				return nil
			}

			token := strings.TrimSpace(parts[1])
			claims, err := verifier.Validate(token)
			if err != nil {
				// a client error, but we don't leak why validation failed
				//nolint:errcheck
				httpx.Abort(c, errorx.Wrap(errors.New("invalid access token"), errorx.Authn), -1)
				return nil
			}

			ctx := c.Request().Context()
			ctx = context.WithValue(ctx, ctxKeyAuthService, claims)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// RequireRole gates a route group on the authenticated service's role.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Request().Context().Value(ctxKeyAuthService).(*services.ServiceClaims)
			if !ok || claims.Role != role {
				//nolint:errcheck
				httpx.Abort(c, errorx.Wrap(errors.New("forbidden"), errorx.Authn), -1)
				return nil
			}
			return next(c)
		}
	}
}

// RateLimitIngest throttles event ingestion per guild.
func RateLimitIngest(container *do.Injector) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rateLimiter, err := do.Invoke[interfaces.Limiter](container)
			if err != nil {
				return err
			}

			guildID := c.Param("guild")
			if guildID == "" {
				guildID = "global"
			}

			err = rateLimiter.Allow(c.Request().Context(), services.LimitKeyIngest(guildID), redis_rate.PerMinute(services.INGEST_RATE_LIMIT_PER_MINUTE))
			if err != nil {
				if err.Error() == limiter.ErrRateLimited.Error() {
					//nolint:errcheck
					httpx.Abort(c, errorx.Wrap(limiter.ErrRateLimited, errorx.RateLimiting), -1)
					return nil
				}
				return err
			}
			return next(c)
		}
	}
}
