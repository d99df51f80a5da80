package api

import (
	"errors"

	domaintheme "github.com/example/daily-todos/domain/theme"
	domaintodo "github.com/example/daily-todos/domain/todo"
	"github.com/example/daily-todos/modules/todo"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRoutes configures all HTTP routes.
func (m *APIModule) setupRoutes(app *fiber.App) {
	app.Get("/health", m.healthHandler)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api/v1")

	todos := api.Group("/todos")
	todos.Get("/", m.listTodos)
	todos.Post("/", m.createTodo)
	todos.Post("/reload", m.reloadTodos)
	todos.Post("/:id/toggle", m.toggleTodo)
	todos.Delete("/:id", m.deleteTodo)

	api.Get("/history", m.listHistory)

	api.Get("/theme", m.getTheme)
	api.Put("/theme", m.setTheme)
	api.Put("/appearance", m.setAppearance)
}

// healthHandler handles GET /health.
func (m *APIModule) healthHandler(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status: "healthy",
		Details: map[string]any{
			"module": "api",
			"addr":   m.addr,
		},
	})
}

// listTodos handles GET /api/v1/todos.
func (m *APIModule) listTodos(c *fiber.Ctx) error {
	resp, err := m.todoPort.ListTodos(c.UserContext(), c.Query("filter", todo.FilterAll))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// createTodo handles POST /api/v1/todos.
func (m *APIModule) createTodo(c *fiber.Ctx) error {
	var req CreateTodoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}

	created, err := m.todoPort.AddTodo(c.UserContext(), req.Title, req.Description)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// toggleTodo handles POST /api/v1/todos/:id/toggle.
func (m *APIModule) toggleTodo(c *fiber.Ctx) error {
	toggled, err := m.todoPort.ToggleTodo(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toggled)
}

// deleteTodo handles DELETE /api/v1/todos/:id.
func (m *APIModule) deleteTodo(c *fiber.Ctx) error {
	if err := m.todoPort.RemoveTodo(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// reloadTodos handles POST /api/v1/todos/reload.
func (m *APIModule) reloadTodos(c *fiber.Ctx) error {
	resp, err := m.todoPort.ReloadTodos(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// listHistory handles GET /api/v1/history.
func (m *APIModule) listHistory(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)
	if limit < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "validation_error",
			Message: "limit must not be negative",
		})
	}

	resp, err := m.historyPort.List(c.UserContext(), limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// getTheme handles GET /api/v1/theme.
func (m *APIModule) getTheme(c *fiber.Ctx) error {
	resp, err := m.themePort.GetTheme(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// setTheme handles PUT /api/v1/theme.
func (m *APIModule) setTheme(c *fiber.Ctx) error {
	var req SetThemeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}

	resp, err := m.themePort.SetTheme(c.UserContext(), req.Theme)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// setAppearance handles PUT /api/v1/appearance.
func (m *APIModule) setAppearance(c *fiber.Ctx) error {
	var req SetAppearanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}

	resp, err := m.themePort.SetAppearance(c.UserContext(), req.Appearance)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// writeError maps domain errors to HTTP status codes.
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domaintodo.ErrEmptyTitle),
		errors.Is(err, domaintheme.ErrInvalidTheme),
		errors.Is(err, todo.ErrInvalidFilter):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
	case errors.Is(err, domaintodo.ErrTodoNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "Todo not found",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
	}
}
