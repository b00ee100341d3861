package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/spacetime/internal/database"
	"github.com/mdouchement/spacetime/internal/server/serializer"
	"github.com/mdouchement/spacetime/internal/server/service"
)

// memory contains all memory handlers.
type memory struct {
	db database.Client
}

///// List
////
//

// List renders the excerpts of the memories of the current principal.
func (h *memory) List(c echo.Context) error {
	memories, err := service.NewMemory(h.db, currentPrincipal(c)).List()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, serializer.MemoryExcerpts(memories))
}

///// Show
////
//

// Show renders a memory.
// A private memory is only rendered to its owner.
func (h *memory) Show(c echo.Context) error {
	id, err := memoryID(c)
	if err != nil {
		return err
	}

	memory, err := service.NewMemory(h.db, currentPrincipal(c)).Get(id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, serializer.Memory(memory))
}

///// Create
////
//

// Create creates a memory owned by the current principal.
func (h *memory) Create(c echo.Context) error {
	params, err := memoryParams(c)
	if err != nil {
		return err
	}

	memory, err := service.NewMemory(h.db, currentPrincipal(c)).Create(params)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, serializer.Memory(memory))
}

///// Update
////
//

// Update replaces the content, the cover and the visibility of a memory.
func (h *memory) Update(c echo.Context) error {
	id, err := memoryID(c)
	if err != nil {
		return err
	}

	params, err := memoryParams(c)
	if err != nil {
		return err
	}

	memory, err := service.NewMemory(h.db, currentPrincipal(c)).Update(id, params)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, serializer.Memory(memory))
}

///// Delete
////
//

// Delete removes a memory.
func (h *memory) Delete(c echo.Context) error {
	id, err := memoryID(c)
	if err != nil {
		return err
	}

	if err = service.NewMemory(h.db, currentPrincipal(c)).Delete(id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func memoryID(c echo.Context) (string, error) {
	params := service.IDParams{
		ID: strings.ToLower(c.Param("id")),
	}
	return params.ID, c.Validate(&params)
}

func memoryParams(c echo.Context) (service.MemoryParams, error) {
	var params service.MemoryParams
	if err := c.Bind(&params); err != nil {
		return params, err
	}
	return params, c.Validate(&params)
}
