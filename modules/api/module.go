package api

import (
	"context"
	"fmt"

	"github.com/example/daily-todos/modules/history"
	"github.com/example/daily-todos/modules/theme"
	"github.com/example/daily-todos/modules/todo"
	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":3000"

// APIModule is the driving adapter that exposes REST endpoints.
// It calls into the todo, history and theme modules via their ports.
type APIModule struct {
	addr        string
	app         *fiber.App
	todoPort    todo.TodoPort
	historyPort history.HistoryPort
	themePort   theme.ThemePort
	log         logrus.FieldLogger
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule listening on addr.
func NewModule(addr string, log logrus.FieldLogger) *APIModule {
	if addr == "" {
		addr = DefaultAddr
	}
	return &APIModule{
		addr: addr,
		log:  log.WithField("module", "api"),
	}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *APIModule) Dependencies() []string {
	return []string{"todo", "history", "theme"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "todo":
		m.todoPort = todo.NewTodoAdapter(container)
	case "history":
		m.historyPort = history.NewHistoryAdapter(container)
	case "theme":
		m.themePort = theme.NewThemeAdapter(container)
	}
}

// Start initializes the Fiber HTTP server.
// Returns an error if required dependencies are not set.
func (m *APIModule) Start(_ context.Context) error {
	if m.todoPort == nil {
		return fmt.Errorf("todoPort dependency not set")
	}
	if m.historyPort == nil {
		return fmt.Errorf("historyPort dependency not set")
	}
	if m.themePort == nil {
		return fmt.Errorf("themePort dependency not set")
	}

	m.app = m.newApp()

	// Server availability is verified via Health() method.
	go func() {
		if err := m.app.Listen(m.addr); err != nil {
			m.log.WithError(err).Error("HTTP server error")
		}
	}()

	m.log.WithField("addr", m.addr).Info("HTTP server started")
	return nil
}

// newApp builds the Fiber app with middleware and routes.
func (m *APIModule) newApp() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(metricsMiddleware)

	m.setupRoutes(app)
	return app
}

// Stop shuts down the Fiber HTTP server.
func (m *APIModule) Stop(_ context.Context) error {
	if m.app == nil {
		return nil
	}
	m.log.Info("Shutting down HTTP server...")
	return m.app.Shutdown()
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"addr": m.addr,
		},
	}
}

// customErrorHandler handles Fiber errors.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   "server_error",
		Message: message,
	})
}
