package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/taskhub/backend/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app. protect is the
// authorization guard; every route behind it receives the resolved user.
func Register(app *fiber.App, auth *handlers.AuthHandler, users *handlers.UserHandler, tasks *handlers.TaskHandler, health *handlers.HealthHandler, protect fiber.Handler) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", health.Health)
	v1.Get("/ready", health.Ready)

	a := v1.Group("/auth")
	a.Post("/register", auth.Register)
	a.Post("/jwt/login", auth.LoginJWT)
	a.Post("/jwt/logout", protect, auth.LogoutJWT)
	a.Post("/cookie/login", auth.LoginCookie)
	a.Post("/cookie/logout", auth.LogoutCookie)
	a.Post("/forgot-password", auth.ForgotPassword)
	a.Post("/reset-password", auth.ResetPassword)
	a.Post("/request-verify-token", auth.RequestVerifyToken)
	a.Post("/verify", auth.Verify)

	u := v1.Group("/users", protect)
	u.Get("/me", users.Me)
	u.Patch("/me", users.UpdateMe)

	t := v1.Group("/tasks", protect)
	t.Get("/", tasks.List)
	t.Post("/", tasks.Create)
	t.Put("/:id", tasks.Update)
	t.Delete("/:id", tasks.Delete)
}
