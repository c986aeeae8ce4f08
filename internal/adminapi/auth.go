package adminapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/rashedalhajeri/quickstore-builder/internal/session"
	"github.com/rashedalhajeri/quickstore-builder/internal/webserver"
)

func registerAuthRoutes() {
	// Register/login stay outside the JWT group.
	webserver.PubPOST("/auth/register", registerMerchant)
	webserver.PubPOST("/auth/login", loginMerchant)
	webserver.ApiPOST("/auth/logout", logoutMerchant)
	webserver.ApiGET("/auth/me", whoami)
}

type registerPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Realname string `json:"realname"`
}

func registerMerchant(c echo.Context) error {
	var payload registerPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse registration", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
	}
	payload.Email = strings.ToLower(strings.TrimSpace(payload.Email))

	merchant, err := mods.Sessions.Register(c.Request().Context(), payload.Email, payload.Password, payload.Realname)
	if errors.Is(err, session.ErrEmailTaken) {
		return fail(c, http.StatusConflict, "EMAIL_TAKEN", "Email is already registered", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to register", err.Error())
	}
	return ok(c, merchant)
}

type loginPayload struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func loginMerchant(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse login", nil)
	}
	sess, token, err := mods.Sessions.SignIn(c.Request().Context(),
		strings.ToLower(strings.TrimSpace(payload.Email)), payload.Password)
	if errors.Is(err, session.ErrBadCredentials) {
		return fail(c, http.StatusUnauthorized, "BAD_CREDENTIALS", "Invalid email or password", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to sign in", err.Error())
	}
	return ok(c, map[string]interface{}{"session": sess, "token": token})
}

func logoutMerchant(c echo.Context) error {
	if sess := webserver.CurrentSession(c); sess != nil {
		mods.Sessions.SignOut(*sess)
	}
	return ok(c, map[string]interface{}{"signed_out": true})
}

func whoami(c echo.Context) error {
	sess := webserver.CurrentSession(c)
	if sess == nil {
		return fail(c, http.StatusUnauthorized, "NO_SESSION", "Not signed in", nil)
	}
	return ok(c, sess)
}
