package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hcms-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	authService auth.AuthService
	trustProxy  bool
}

func NewAuthHandler(authService auth.AuthService, trustProxy bool) AuthHandler {
	return &AuthHandlerImpl{
		authService: authService,
		trustProxy:  trustProxy,
	}
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest

	if err := decodeJSON(r, &loginReq); err != nil {
		slog.Debug("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	client := auth.ClientInfo{
		IPAddress: clientIP(r, a.trustProxy),
		UserAgent: r.UserAgent(),
	}
	loginResp, err := a.authService.Login(r.Context(), loginReq, client)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.JSON(w, loginResp)
}

// Logout implements AuthHandler.
func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	token, _, err := jwtauth.FromContext(r.Context())
	if err != nil || token == nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	if err := a.authService.Logout(r.Context(), jwtauth.TokenFromHeader(r), token.Expiration()); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Message(w, "Logged out successfully")
}

// Me implements AuthHandler.
func (a *AuthHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	me, err := a.authService.Me(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.JSON(w, me)
}
