package common

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
)

const ExternalIDKey string = "externalID"
const externalIDKeyCtx ctxKey = ctxKey(ExternalIDKey)

// ExternalIDMiddleware extracts the X-External-Id header and sets it as a
// request context value, letting callers correlate compose requests with
// their own identifiers.
func ExternalIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		eid := c.Request().Header.Get("X-External-Id")
		if eid == "" {
			return next(c)
		}

		eid = strings.TrimSuffix(eid, "\n")
		c.Set(ExternalIDKey, eid)

		ctx := c.Request().Context()
		ctx = context.WithValue(ctx, externalIDKeyCtx, eid)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// ExternalID returns the caller-supplied id stored in ctx, or the empty
// string when the request carried no X-External-Id header.
func ExternalID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	eid, ok := ctx.Value(externalIDKeyCtx).(string)
	if !ok {
		return ""
	}
	return eid
}
