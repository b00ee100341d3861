package server

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mdouchement/spacetime/internal/database"
	"github.com/mdouchement/spacetime/internal/model"
	"github.com/mdouchement/spacetime/internal/server/middlewares"
)

// An IOC is an Iversion Of Control pattern used to init the server package.
type IOC struct {
	Version  string
	Database database.Client
	// Output of the request logger, stdout when nil.
	LogOutput io.Writer
	// AuthEnabled selects the authenticated variant of the API.
	// When disabled, memories are owned by AnonymousUserID and no ownership rule applies.
	AuthEnabled     bool
	AnonymousUserID string
	// JWT params
	SigningKey []byte
}

// EchoEngine instantiates the wep server.
func EchoEngine(ctrl IOC) *echo.Echo {
	engine := echo.New()
	engine.HideBanner = true
	engine.Use(middleware.Recover())
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig))
	engine.Use(middleware.Gzip())

	output := ctrl.LogOutput
	if output == nil {
		output = os.Stdout
	}
	engine.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "[${status}] ${method} ${uri} (${bytes_in}) ${latency_human}\n",
		Output: output,
	}))
	engine.Binder = middlewares.NewBinder()
	engine.Validator = middlewares.NewValidator()
	// Error handler
	engine.HTTPErrorHandler = middlewares.HTTPErrorHandler

	engine.Pre(middleware.Rewrite(map[string]string{
		"/": "/version",
	}))

	////////////
	// Router //
	////////////

	router := engine.Group("")

	// generic handlers
	//
	router.GET("/version", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"version": ctrl.Version,
		})
	})

	//
	// memory handlers
	//
	memories := router.Group("/memories")
	if ctrl.AuthEnabled {
		memories.Use(middlewares.Principal(ctrl.SigningKey))
	} else {
		memories.Use(middlewares.Anonymous(ctrl.AnonymousUserID))
	}

	memory := &memory{
		db: ctrl.Database,
	}
	memories.GET("", memory.List)
	memories.GET("/:id", memory.Show)
	memories.POST("", memory.Create)
	memories.PUT("/:id", memory.Update)
	memories.DELETE("/:id", memory.Delete)

	return engine
}

// PrintRoutes prints the Echo engin exposed routes.
func PrintRoutes(w io.Writer, e *echo.Echo) {
	ignored := map[string]bool{
		"":            true,
		".":           true,
		"/*":          true,
		"/memories/*": true,
	}

	routes := e.Routes()
	sort.Slice(routes, func(i int, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})

	fmt.Fprintln(w, "Routes:")
	for _, route := range routes {
		if ignored[route.Path] || route.Method == echo.RouteNotFound {
			continue
		}
		fmt.Fprintf(w, "%6s %s\n", route.Method, route.Path)
	}
}

func currentPrincipal(c echo.Context) model.Principal {
	principal, ok := c.Get(middlewares.CurrentPrincipalContextKey).(model.Principal)
	if ok {
		return principal
	}
	panic("principal middleware is missing")
}
