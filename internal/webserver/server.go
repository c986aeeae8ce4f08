// Package webserver hosts the echo instance shared by the admin API and
// the public storefront API. Handlers register themselves through the
// package-level ApiGET/PubGET helpers during init wiring.
package webserver

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/sessions"
	jsoniter "github.com/json-iterator/go"
	echojwt "github.com/labstack/echo-jwt/v4"
	echosession "github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"go.uber.org/zap"

	"github.com/rashedalhajeri/quickstore-builder/config"
	"github.com/rashedalhajeri/quickstore-builder/internal/session"
	"github.com/rashedalhajeri/quickstore-builder/pkg/common"
)

// SessionContextKey is where the parsed merchant session lives on the
// echo context.
const SessionContextKey = "merchant-session"

type WebContext struct {
	config  *config.AppConfig
	root    *echo.Echo
	api     *echo.Group
	public  *echo.Group
	manager *session.Manager
}

var server *WebContext

// echoValidator adapts go-playground/validator to echo's Validate.
type echoValidator struct {
	v *validator.Validate
}

func (ev *echoValidator) Validate(i interface{}) error {
	if err := ev.v.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// jsonSerializer swaps echo's encoding/json for jsoniter.
type jsonSerializer struct{}

func (jsonSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := jsoniter.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (jsonSerializer) Deserialize(c echo.Context, i interface{}) error {
	return jsoniter.NewDecoder(c.Request().Body).Decode(i)
}

// Init builds the shared echo instance: jsoniter serializer, recovery,
// zap request logging, cookie sessions for the storefront cart, and a
// JWT-guarded /admin/api group backed by the session manager.
func Init(cfg *config.AppConfig, manager *session.Manager) *WebContext {
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.ERROR)
	e.JSONSerializer = jsonSerializer{}
	e.Validator = &echoValidator{v: validator.New()}
	e.Use(middleware.Recover())
	e.Use(ZapLoggerMiddleware())
	secret := cfg.Web.Secret
	if secret == "" {
		secret = common.RandomHex(32)
		zap.S().Warn("web secret not configured, cookie sessions will not survive restarts")
	}
	e.Use(echosession.Middleware(sessions.NewCookieStore([]byte(secret))))

	api := e.Group("/admin/api")
	api.Use(echojwt.WithConfig(echojwt.Config{
		ContextKey: SessionContextKey,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return manager.ParseToken(auth)
		},
	}))

	public := e.Group("/api/v1")

	server = &WebContext{
		config:  cfg,
		root:    e,
		api:     api,
		public:  public,
		manager: manager,
	}
	return server
}

// ZapLoggerMiddleware logs each request through the global zap logger.
func ZapLoggerMiddleware() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				zap.S().Warnf("%s %s %d %s", v.Method, v.URI, v.Status, v.Error.Error())
			} else {
				zap.S().Debugf("%s %s %d", v.Method, v.URI, v.Status)
			}
			return nil
		},
	})
}

// CurrentSession returns the authenticated merchant session of an admin
// request.
func CurrentSession(c echo.Context) *session.Session {
	sess, _ := c.Get(SessionContextKey).(*session.Session)
	return sess
}

// Start runs the server until the listener fails.
func Start() error {
	cfg := server.config
	addr := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	zap.S().Infof("webserver listening on %s", addr)
	err := server.root.Start(addr)
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Echo returns the underlying instance (used by tests).
func Echo() *echo.Echo {
	return server.root
}

// ApiGET registers an authenticated dashboard route.
func ApiGET(path string, h echo.HandlerFunc)    { server.api.GET(path, h) }
func ApiPOST(path string, h echo.HandlerFunc)   { server.api.POST(path, h) }
func ApiPUT(path string, h echo.HandlerFunc)    { server.api.PUT(path, h) }
func ApiDELETE(path string, h echo.HandlerFunc) { server.api.DELETE(path, h) }

// PubGET registers a public storefront route.
func PubGET(path string, h echo.HandlerFunc)    { server.public.GET(path, h) }
func PubPOST(path string, h echo.HandlerFunc)   { server.public.POST(path, h) }
func PubDELETE(path string, h echo.HandlerFunc) { server.public.DELETE(path, h) }
