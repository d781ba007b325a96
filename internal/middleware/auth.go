package middleware

import (
	"encoding/base64"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/zmfmock/server/api/transport"
	"github.com/zmfmock/server/domain"
	authUC "github.com/zmfmock/server/usecase/auth"
)

const (
	// TokenCookieName is the cookie carrying the bearer token between requests.
	TokenCookieName = "ZMF-AUTH-TOKEN"
	// TokenHeaderName is the header alternative to the cookie.
	TokenHeaderName = "X-Auth-Token"
	// SessionKey is the fasthttp user-value key holding the authenticated session.
	SessionKey = "auth_session"
)

// SessionAuth authenticates every request through the gate before the handler
// runs. When the gate mints a fresh bearer token the middleware attaches it
// to the response as an http-only cookie.
func SessionAuth(gate *authUC.Gate, cookieTTL time.Duration, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if cookieTTL <= 0 {
		cookieTTL = 8 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			creds := extractCredentials(ctx)
			bearer := extractBearer(ctx)

			result, err := gate.Authenticate(ctx, creds, bearer)
			if err != nil {
				status := fasthttp.StatusUnauthorized
				if !domain.IsDomainError(err, domain.ErrCodeUnauthorized) {
					status = fasthttp.StatusInternalServerError
				}
				transport.WriteXML(ctx, status, transport.NewFault(transport.StatusNotAvailable, err.Error()))
				return
			}

			if result.TokenIssued {
				attachTokenCookie(ctx, result.Token, cookieTTL)
				logger.Debug("bearer token attached",
					zap.String("session_id", result.Session.ID))
			}

			ctx.SetUserValue(SessionKey, result.Session)
			next(ctx)
		}
	}
}

// SessionFrom retrieves the session stored by the middleware.
func SessionFrom(ctx *fasthttp.RequestCtx) *domain.Session {
	session, _ := ctx.UserValue(SessionKey).(*domain.Session)
	return session
}

func extractBearer(ctx *fasthttp.RequestCtx) string {
	if header := string(ctx.Request.Header.Peek("Authorization")); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if header := string(ctx.Request.Header.Peek(TokenHeaderName)); header != "" {
		return header
	}
	return string(ctx.Request.Header.Cookie(TokenCookieName))
}

func extractCredentials(ctx *fasthttp.RequestCtx) *authUC.Credentials {
	header := string(ctx.Request.Header.Peek("Authorization"))
	if !strings.HasPrefix(header, "Basic ") {
		return nil
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(header, "Basic "))
	if err != nil {
		return nil
	}
	username, password, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return nil
	}
	return &authUC.Credentials{Username: username, Password: password}
}

func attachTokenCookie(ctx *fasthttp.RequestCtx, token string, ttl time.Duration) {
	cookie := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(cookie)

	cookie.SetKey(TokenCookieName)
	cookie.SetValue(token)
	cookie.SetPath("/")
	cookie.SetHTTPOnly(true)
	cookie.SetSameSite(fasthttp.CookieSameSiteLaxMode)
	cookie.SetExpire(time.Now().Add(ttl))
	ctx.Response.Header.SetCookie(cookie)
}
