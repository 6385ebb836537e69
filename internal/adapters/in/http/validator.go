package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"logistics/internal/generated/servers"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const bearerScheme = "bearerAuth"

var (
	ErrMissingBearerToken = errors.New("missing bearer token")
	ErrUnknownAuthScheme  = errors.New("unknown security scheme")
)

// LoadOpenAPI parses and validates the API document.
func LoadOpenAPI(ctx context.Context, raw []byte) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	return doc, nil
}

// RequestValidator rejects requests that do not match the OpenAPI document.
// Security requirements declared in the document are checked with auth; routes
// the document does not describe (health, swagger) pass through.
func RequestValidator(doc *openapi3.T, auth openapi3filter.AuthenticationFunc) (echo.MiddlewareFunc, error) {
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: auth,
		MultiError:         false,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			req := ctx.Request()

			route, pathParams, findErr := router.FindRoute(req)
			if findErr != nil {
				// echo answers unknown paths and methods itself
				return next(ctx)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err := openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				var secErr *openapi3filter.SecurityRequirementsError
				if errors.As(err, &secErr) {
					return ctx.JSON(http.StatusUnauthorized, servers.Error{
						Code:    http.StatusUnauthorized,
						Message: "Unauthorized",
					})
				}
				return ctx.JSON(http.StatusBadRequest, servers.Error{
					Code:    http.StatusBadRequest,
					Message: validationMessage(err),
				})
			}

			return next(ctx)
		}
	}, nil
}

// BearerAuthenticator verifies HMAC-signed JWTs issued by the identity service.
// An empty secret disables the check.
func BearerAuthenticator(secret []byte) openapi3filter.AuthenticationFunc {
	if len(secret) == 0 {
		return openapi3filter.NoopAuthenticationFunc
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
		jwt.WithExpirationRequired(),
	)

	return func(_ context.Context, input *openapi3filter.AuthenticationInput) error {
		if input.SecuritySchemeName != bearerScheme {
			return fmt.Errorf("%w: %s", ErrUnknownAuthScheme, input.SecuritySchemeName)
		}

		header := input.RequestValidationInput.Request.Header.Get(echo.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			return ErrMissingBearerToken
		}

		if _, err := parser.Parse(token, func(*jwt.Token) (any, error) { return secret, nil }); err != nil {
			return fmt.Errorf("invalid bearer token: %w", err)
		}
		return nil
	}
}

func validationMessage(err error) string {
	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.Parameter != nil {
			return fmt.Sprintf("Invalid parameter %s: %s", reqErr.Parameter.Name, reqErr.Reason)
		}
		if reqErr.Err != nil {
			return "Invalid request body: " + firstLine(reqErr.Err.Error())
		}
		return "Invalid request: " + reqErr.Reason
	}
	return "Invalid request: " + firstLine(err.Error())
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
