package http

import (
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	legacyrouter "github.com/getkin/kin-openapi/routers/legacy"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var openapiYAML []byte

// LoadSpec parses and validates the embedded API document.
func LoadSpec() (*openapi3.T, error) {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromData(openapiYAML)
	if err != nil {
		return nil, fmt.Errorf("failed to load api document: %w", err)
	}
	if err = doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("invalid api document: %w", err)
	}

	return doc, nil
}

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

// apiDoc serves the embedded document to swagger UI as JSON.
type apiDoc struct {
	json string
}

func (d apiDoc) ReadDoc() string {
	return d.json
}

var registerDocOnce sync.Once

// NewEcho builds the echo instance: request logging, panic recovery, request
// validation against the API document, the API routes, /health and /swagger.
func NewEcho(server *Server, logger zerolog.Logger) (*echo.Echo, error) {
	doc, err := LoadSpec()
	if err != nil {
		return nil, err
	}

	specValidator, err := openAPIValidator(doc)
	if err != nil {
		return nil, err
	}

	docJSON, err := doc.MarshalJSON()
	if err != nil {
		return nil, err
	}
	registerDocOnce.Do(func() {
		swag.Register(swag.Name, apiDoc{json: string(docJSON)})
	})

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.WARN)
	e.Validator = &requestValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
	e.HTTPErrorHandler = errorHandler(e)

	httpLogger := logger.With().Str("component", "http").Logger()
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			event := httpLogger.Info()
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				event = httpLogger.Error().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	}))
	e.Use(specValidator)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	RegisterHandlers(e, server)

	return e, nil
}

// openAPIValidator rejects requests that do not match the API document.
// Requests outside the document, such as /health, pass through untouched.
func openAPIValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := legacyrouter.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to build api router: %w", err)
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			route, pathParams, findErr := router.FindRoute(req)
			if findErr != nil {
				return next(c)
			}

			err := openapi3filter.ValidateRequest(req.Context(), &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			})
			if err != nil {
				return c.JSON(http.StatusBadRequest, Error{
					Code:    http.StatusBadRequest,
					Message: "Request does not match the API: " + err.Error(),
				})
			}

			return next(c)
		}
	}, nil
}

// errorHandler renders echo's own errors (unknown route, bad path parameter)
// in the API error shape.
func errorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		msg := http.StatusText(code)
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			msg = fmt.Sprint(he.Message)
		}

		if writeErr := c.JSON(code, Error{Code: code, Message: msg}); writeErr != nil {
			e.Logger.Error(writeErr)
		}
	}
}
