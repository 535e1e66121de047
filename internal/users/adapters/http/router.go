// Package http содержит компоненты HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"

	"userapi/internal/users/adapters/http/middleware"
	"userapi/internal/users/adapters/http/response"
	"userapi/internal/users/adapters/http/status"
	"userapi/internal/users/adapters/http/users"
	"userapi/internal/users/app/usecases"
)

// SetupRouter регистрирует middleware и маршруты.
func SetupRouter(app *fiber.App, uc *usecases.Set, databaseName string) {
	usersHandler := users.NewHandler(uc)
	statusHandler := status.NewHandler(uc.GetStatus, databaseName)

	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	app.Get("/users", usersHandler.ListUsers)
	app.Get("/user/:id", usersHandler.GetUser)
	app.Post("/user", usersHandler.CreateUser)
	app.Put("/user/:id", usersHandler.UpdateUser)
	app.Delete("/user/:id", usersHandler.DeleteUser)

	app.Get("/status", statusHandler.GetStatus)

	app.Use(func(ctx fiber.Ctx) error {
		return response.Message(ctx, fiber.StatusNotFound, response.MsgRouteNotFound)
	})
}
