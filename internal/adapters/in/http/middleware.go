package http

import (
	"fmt"
	"time"

	"encomendas/internal/core/domain/model/kernel"
	"encomendas/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

const (
	HeaderTenantID = "X-Tenant-ID"
	HeaderUser     = "X-User"

	tenantKey = "tenant"
)

// TenantMiddleware builds the tenant context of the request from the
// X-Tenant-ID and X-User headers. A missing user is recorded as the system
// actor. The request logger gains the tenant and actor fields.
func TenantMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(HeaderTenantID)
			if raw == "" {
				return newBadRequest("missing tenant", Violation{
					Field: HeaderTenantID, Code: "required", Message: "this header is required",
				})
			}
			tenantID, err := kernel.UUIDFromString(raw)
			if err != nil {
				return newBadRequest("invalid tenant", Violation{
					Field: HeaderTenantID, Code: "uuid", Message: err.Error(),
				})
			}
			tc, err := kernel.NewTenantContext(tenantID, c.Request().Header.Get(HeaderUser))
			if err != nil {
				return newBadRequest(fmt.Sprintf("invalid tenant context: %s", err))
			}
			c.Set(tenantKey, tc)

			ctx := c.Request().Context()
			log := logger.FromContext(ctx, nil).With(
				zap.String("tenant_id", tc.TenantID().String()),
				zap.String("actor", tc.Actor()),
			)
			c.SetRequest(c.Request().WithContext(logger.WithContext(ctx, log)))
			return next(c)
		}
	}
}

// tenant returns the context stored by TenantMiddleware. Every route using it
// is registered behind that middleware.
func tenant(c echo.Context) kernel.TenantContext {
	tc, _ := c.Get(tenantKey).(kernel.TenantContext)
	return tc
}

// ContextLogger puts a logger tagged with the request id into the request
// context, where the use cases and the gorm logger pick it up.
func ContextLogger(log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Response().Header().Get(echo.HeaderXRequestID)
			reqLog := log.With(zap.String("request_id", id))
			c.SetRequest(c.Request().WithContext(logger.WithContext(c.Request().Context(), reqLog)))
			return next(c)
		}
	}
}

// AccessLog logs one line per request.
func AccessLog(log *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency.Round(time.Microsecond)),
			}
			l := logger.FromContext(c.Request().Context(), log)
			if v.Error != nil {
				l.Info("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			l.Info("request", fields...)
			return nil
		},
	})
}
