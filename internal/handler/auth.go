package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/DvineConqueror/GroceryStorePOS/internal/apierror"
	"github.com/DvineConqueror/GroceryStorePOS/internal/dto"
	"github.com/DvineConqueror/GroceryStorePOS/internal/middleware"
	"github.com/DvineConqueror/GroceryStorePOS/internal/service"
	"github.com/DvineConqueror/GroceryStorePOS/internal/session"
)

type AuthHandler struct {
	svc      service.AuthService
	notifier *session.Notifier
}

func NewAuthHandler(svc service.AuthService, notifier *session.Notifier) *AuthHandler {
	return &AuthHandler{svc: svc, notifier: notifier}
}

// SignUp godoc
// @Summary      Create a cashier account pending admin approval
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body dto.SignUpRequest true "Account details"
// @Success      201 {object} dto.AuthResult
// @Failure      400 {object} dto.AuthResult
// @Router       /v1/auth/signup [post]
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req dto.SignUpRequest
	if !bindAndValidate(c, &req) {
		return
	}
	res := h.svc.SignUp(c.Request.Context(), req)
	if !res.Success {
		c.JSON(http.StatusBadRequest, res)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// SignIn godoc
// @Summary      Sign in and rotate the account's active session token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body dto.SignInRequest true "Credentials"
// @Success      200 {object} dto.SignInResponse
// @Failure      401 {object} dto.SignInResponse
// @Router       /v1/auth/signin [post]
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req dto.SignInRequest
	if !bindAndValidate(c, &req) {
		return
	}
	res := h.svc.SignIn(c.Request.Context(), req)
	if !res.Success {
		c.JSON(http.StatusUnauthorized, res)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) SignOut(c *gin.Context) {
	claims := middleware.GetClaims(c)
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid token subject"))
		return
	}
	c.JSON(http.StatusOK, h.svc.SignOut(c.Request.Context(), userID, claims.SessionToken))
}

// RefreshSession reconciles the device's session marker against the
// profile's active token. 401 with invalidated=true tells the device another
// sign-in has replaced it.
func (h *AuthHandler) RefreshSession(c *gin.Context) {
	claims := middleware.GetClaims(c)
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid token subject"))
		return
	}
	res := h.svc.RefreshSession(c.Request.Context(), userID, claims.SessionToken)
	if res.Invalidated {
		c.JSON(http.StatusUnauthorized, res)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Events streams profile row changes for the caller as server-sent events.
// When the pushed active_session_token no longer matches this connection's
// marker the stream emits session-invalidated and closes; the device is
// expected to sign out. The subscription dies with the request context.
func (h *AuthHandler) Events(c *gin.Context) {
	claims := middleware.GetClaims(c)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	events := h.notifier.Subscribe(c.Request.Context(), claims.UserID)
	c.Stream(func(_ io.Writer) bool {
		ev, ok := <-events
		if !ok {
			return false
		}
		if ev.ActiveSessionToken == nil || *ev.ActiveSessionToken != claims.SessionToken {
			c.SSEvent("session-invalidated", gin.H{"reason": "signed in on another device"})
			return false
		}
		c.SSEvent("profile-updated", ev)
		return true
	})
}
