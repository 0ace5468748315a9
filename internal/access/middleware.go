package access

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/sirupsen/logrus"
)

// SessionCookieName is the cookie that carries the session token for browser clients.
const SessionCookieName = "session"

// TokenResolver turns a session token into the identity it was issued to.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (*Identity, error)
}

// TokenFromHeaders extracts a session token from a bearer Authorization
// header, falling back to the session cookie.
func TokenFromHeaders(authorization, cookie string) string {
	if strings.HasPrefix(authorization, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authorization, "Bearer "))
	}
	if cookie == "" {
		return ""
	}
	req := http.Request{Header: http.Header{"Cookie": []string{cookie}}}
	c, err := req.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// Middleware resolves the session token of each request. Requests without a
// valid token continue anonymously; operations that need an identity call
// RequireIdentity themselves.
func Middleware(resolver TokenResolver, logger *logrus.Logger) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		token := TokenFromHeaders(ctx.Header("Authorization"), ctx.Header("Cookie"))
		if token == "" {
			next(ctx)
			return
		}

		identity, err := resolver.ResolveToken(ctx.Context(), token)
		if err != nil {
			logger.WithError(err).Debug("access.Middleware.resolve token")
			next(ctx)
			return
		}

		next(huma.WithContext(ctx, WithIdentity(ctx.Context(), identity)))
	}
}
