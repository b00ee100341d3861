package middlewares

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/spacetime/internal/apierror"
)

type binder struct {
	echo.DefaultBinder
	methodsWithBody map[string]bool
}

// NewBinder returns a wrapp of the default binder implementation with extra checks.
// Malformed payloads are reported as validation errors.
func NewBinder() echo.Binder {
	return &binder{
		methodsWithBody: map[string]bool{
			http.MethodPost:  true,
			http.MethodPatch: true,
			http.MethodPut:   true,
		},
	}
}

// Bind implements the echo.Bind interface.
func (b *binder) Bind(i any, c echo.Context) error {
	if c.Request().ContentLength == 0 && b.methodsWithBody[c.Request().Method] {
		return apierror.Validation("", "Request body can't be empty.")
	}

	err := b.DefaultBinder.Bind(i, c)
	if err == nil {
		return nil
	}

	herr, ok := err.(*echo.HTTPError)
	if !ok || herr.Code != http.StatusBadRequest {
		return err
	}

	switch ierr := herr.Internal.(type) {
	case *json.UnmarshalTypeError:
		if ierr.Field == "" {
			return apierror.Validation("", "Request body must be a JSON object.")
		}
		return apierror.Validation(ierr.Field, fmt.Sprintf("%s must be a %s.", ierr.Field, ierr.Type))
	case *json.SyntaxError:
		return apierror.Validation("", fmt.Sprintf("Malformed JSON at offset %d.", ierr.Offset))
	}
	return apierror.Validation("", "Could not read request body.")
}
