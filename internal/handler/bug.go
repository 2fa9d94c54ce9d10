package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sumire/bugs/internal/domain"
	"github.com/sumire/bugs/internal/service"
)

// BugHandler handles the /bugs endpoints.
type BugHandler struct {
	bugs *service.BugService
}

// NewBugHandler creates a new BugHandler.
func NewBugHandler(bugs *service.BugService) *BugHandler {
	return &BugHandler{bugs: bugs}
}

// Register mounts the bug routes on g.
func (h *BugHandler) Register(g *echo.Group) {
	g.GET("/bugs", h.List)
	g.POST("/bugs", h.Create)
	g.PUT("/bugs/:id", h.Update)
	g.DELETE("/bugs/:id", h.Delete)
}

// bugIDParam carries the :id path segment. Ids the store could never have
// issued are reported as not found.
type bugIDParam struct {
	ID string `param:"id" validate:"required,uuid"`
}

// List returns all bugs, newest first.
func (h *BugHandler) List(c echo.Context) error {
	bugs, err := h.bugs.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bugs)
}

// Create reports a new bug.
func (h *BugHandler) Create(c echo.Context) error {
	var payload domain.BugPayload
	if err := bindBody(c, &payload); err != nil {
		return err
	}

	bug, err := h.bugs.Create(c.Request().Context(), payload)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, bug)
}

// Update changes the supplied fields of an existing bug.
func (h *BugHandler) Update(c echo.Context) error {
	id, err := bugID(c)
	if err != nil {
		return err
	}

	var payload domain.BugPayload
	if err := bindBody(c, &payload); err != nil {
		return err
	}

	bug, err := h.bugs.Update(c.Request().Context(), id, payload)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bug)
}

// Delete removes a bug.
func (h *BugHandler) Delete(c echo.Context) error {
	id, err := bugID(c)
	if err != nil {
		return err
	}

	if err := h.bugs.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, DeleteResponse{
		Message: "Bug deleted successfully",
		ID:      id,
	})
}

func bugID(c echo.Context) (string, error) {
	var params bugIDParam
	if err := (&echo.DefaultBinder{}).BindPathParams(c, &params); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if err := c.Validate(params); err != nil {
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			return "", fmt.Errorf("bug id %q: %w", params.ID, domain.ErrNotFound)
		}
		return "", err
	}
	return params.ID, nil
}

func bindBody(c echo.Context, dst *domain.BugPayload) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}
