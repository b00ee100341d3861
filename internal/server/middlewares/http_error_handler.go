package middlewares

import (
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/labstack/echo/v4"
	"github.com/mdouchement/spacetime/internal/apierror"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// HTTPErrorHandler is a middleware that formats rendered errors.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	switch cause := errors.Cause(err).(type) {
	case *echo.HTTPError:
		logrus.WithError(cause.Internal).WithField("status", cause.Code).Debug("echo error")
		_ = c.JSON(cause.Code, echo.Map{
			"error": echo.Map{
				"message": cause.Message,
			},
		})
	case *apierror.Error:
		status := apierror.StatusCode(cause)
		if status < 500 {
			_ = c.JSON(status, cause)
			return
		}

		internal(err, c)
	default:
		internal(err, c)
	}
}

func internal(err error, c echo.Context) {
	id := uuid.Must(uuid.NewV4()).String()
	logrus.WithField("id", id).Errorf("%+v", err)

	rerr := apierror.New(fmt.Sprintf("Unexpected error (id: %s)", id))
	_ = c.JSON(apierror.StatusCode(rerr), rerr)
}
