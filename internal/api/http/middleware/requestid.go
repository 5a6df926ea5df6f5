package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/Alijeyrad/clinic_console/pkg/constants"
	"github.com/Alijeyrad/clinic_console/pkg/reqctx"
)

const (
	LocalRequestID   = "request_id"
	localRequestMeta = "request_meta"
)

// RequestID preserves the console's X-Request-Id, or generates one, and
// echoes it back so both sides log the same id.
func RequestID() fiber.Handler {
	return func(c fiber.Ctx) error {
		rid := c.Get(constants.HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}

		c.Locals(LocalRequestID, rid)
		c.Set(constants.HeaderRequestID, rid)
		c.Request().Header.Set(constants.HeaderRequestID, rid)

		meta := &reqctx.RequestMeta{
			RequestID: rid,
			Command:   c.Method() + " " + c.Path(),
			StartedAt: time.Now(),
		}
		c.Locals(localRequestMeta, meta)
		c.SetContext(reqctx.WithRequestMeta(c.Context(), meta))

		return c.Next()
	}
}

// RequestIDFromFiber retrieves the request ID from Fiber locals.
func RequestIDFromFiber(c fiber.Ctx) (string, bool) {
	s, ok := c.Locals(LocalRequestID).(string)
	return s, ok && s != ""
}

// RequestMetaFromFiber retrieves the request metadata from Fiber locals.
func RequestMetaFromFiber(c fiber.Ctx) (*reqctx.RequestMeta, bool) {
	meta, ok := c.Locals(localRequestMeta).(*reqctx.RequestMeta)
	return meta, ok && meta != nil
}
