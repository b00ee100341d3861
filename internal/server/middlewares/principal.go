package middlewares

import (
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/mdouchement/spacetime/internal/apierror"
	"github.com/mdouchement/spacetime/internal/model"
	"github.com/mdouchement/spacetime/internal/server/token"
)

// CurrentPrincipalContextKey is the key to retrieve the current_principal from echo.Context.
const CurrentPrincipalContextKey = "current_principal"

const jwtContextKey = "user"

// Principal returns a JWT auth middleware.
// The token's subject is the user id stored as current_principal into echo.Context.
func Principal(signingKey []byte) echo.MiddlewareFunc {
	verify := echojwt.WithConfig(echojwt.Config{
		SigningKey: signingKey,
		ContextKey: jwtContextKey,
		NewClaimsFunc: func(echo.Context) jwt.Claims {
			return token.NewClaims()
		},
	})

	fake := func(echo.Context) error {
		return nil
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := verify(fake)(c); err != nil {
				return apierror.InvalidAuth("Invalid login credentials.")
			}

			tk, _ := c.Get(jwtContextKey).(*jwt.Token)
			subject, err := token.Subject(tk)
			if err != nil {
				return apierror.InvalidAuth("Invalid login credentials.")
			}

			c.Set(CurrentPrincipalContextKey, model.Authenticated(subject))
			return next(c)
		}
	}
}

// Anonymous returns a middleware used when authentication is disabled.
// Every request is performed on behalf of the given user id.
func Anonymous(userID string) echo.MiddlewareFunc {
	principal := model.Anonymous(userID)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(CurrentPrincipalContextKey, principal)
			return next(c)
		}
	}
}
