package auth

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/warwickallen/allen-app-challenge-2026/internal/access"
	"github.com/warwickallen/allen-app-challenge-2026/internal/auth"
	"github.com/warwickallen/allen-app-challenge-2026/internal/handlers/fields"
	"github.com/warwickallen/allen-app-challenge-2026/internal/handlers/httperr"
	"github.com/warwickallen/allen-app-challenge-2026/internal/logging"
	"github.com/warwickallen/allen-app-challenge-2026/internal/metrics"
)

// SignInBody is the request body for signing in.
type SignInBody struct {
	Email    string `json:"email" minLength:"1" maxLength:"320" doc:"Participant email"`
	Password string `json:"password" minLength:"1" maxLength:"200" doc:"Participant password"`
}

// SignInInput is the Huma input for signing in.
type SignInInput struct {
	Body SignInBody
}

// SignInResponse is the response body for signing in.
type SignInResponse struct {
	Token       string              `json:"token" doc:"Bearer token for the Authorization header"`
	ExpiresAt   string              `json:"expiresAt" doc:"RFC3339 session expiry"`
	Participant *SessionParticipant `json:"participant" doc:"Signed-in participant"`
}

// SignInOutput is the Huma output for signing in.
type SignInOutput struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
	Body      SignInResponse
}

// signer is the interface for issuing sessions.
type signer interface {
	SignIn(ctx context.Context, email, password string) (*auth.SignInResult, error)
}

// SignInHandler handles POST /v1/auth/sign-in.
type SignInHandler struct {
	Auth         signer
	Middlewares  huma.Middlewares
	SecureCookie bool
}

// NewSignInHandler creates a new SignInHandler. Middlewares run before the
// handler, typically a rate limiter.
func NewSignInHandler(svc signer, secureCookie bool, middlewares ...func(huma.Context, func(huma.Context))) *SignInHandler {
	return &SignInHandler{Auth: svc, Middlewares: middlewares, SecureCookie: secureCookie}
}

// Register registers the sign-in endpoint with the Huma API.
func (h *SignInHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "sign-in",
		Method:      http.MethodPost,
		Path:        "/v1/auth/sign-in",
		Summary:     "Sign in",
		Description: "Exchanges an email and password for a session token. The token is also set as a cookie.",
		Tags:        []string{"Auth"},
		Middlewares: h.Middlewares,
	}, h.handle)
}

func (h *SignInHandler) handle(ctx context.Context, input *SignInInput) (*SignInOutput, error) {
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("signInMs")
	}
	result, err := h.Auth.SignIn(ctx, input.Body.Email, input.Body.Password)
	if stopTimer != nil {
		stopTimer()
	}
	metrics.RecordSignIn(err == nil)
	if err != nil {
		return nil, httperr.Respond(ctx, err)
	}

	if logData != nil {
		logData.AddData("participantID", result.Participant.ID.String())
	}

	return &SignInOutput{
		SetCookie: http.Cookie{
			Name:     access.SessionCookieName,
			Value:    result.Token,
			Path:     "/",
			Expires:  result.ExpiresAt,
			HttpOnly: true,
			Secure:   h.SecureCookie,
			SameSite: http.SameSiteLaxMode,
		},
		Body: SignInResponse{
			Token:       result.Token,
			ExpiresAt:   fields.Timestamp(result.ExpiresAt),
			Participant: fromParticipant(result.Participant),
		},
	}, nil
}
