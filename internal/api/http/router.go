package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

func RegisterHTTPEndpoints(f *fiber.App, u UseCases, l *logrus.Logger) {
	h := NewHandler(u, l)

	f.Get("/health", h.HealthCheck)

	f.Get("/account", h.GetAccount)
	f.Get("/clock", h.GetClock)

	orders := f.Group("/orders")
	orders.Post("/", h.SubmitOrder)
	orders.Get("/", h.ListOrders)
	orders.Delete("/", h.CancelAllOrders)
	orders.Get("/:id", h.GetOrder)
	orders.Delete("/:id", h.CancelOrder)

	positions := f.Group("/positions")
	positions.Get("/", h.ListPositions)
	positions.Get("/:symbol", h.GetPosition)
	positions.Delete("/:symbol", h.ClosePosition)

	f.Get("/quotes/:symbol", h.GetQuote)

	options := f.Group("/options")
	options.Get("/contracts", h.ListOptionContracts)
	options.Get("/contracts/:symbol_or_id", h.GetOptionContract)
	options.Get("/chain/:underlying", h.GetOptionChain)
	options.Get("/quotes/:symbol", h.GetOptionQuote)
	options.Get("/snapshots/:symbol", h.GetOptionSnapshot)
	options.Post("/orders", h.SubmitOptionOrder)
	options.Post("/orders/multi-leg", h.SubmitMultiLegOrder)
	options.Post("/exercise/:symbol_or_id", h.ExerciseOption)
}
