package main

import (
	api "alpaca/internal/api/http"
	"alpaca/internal/controllers"
	"alpaca/internal/usecasees"
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	app := App{Name: "alpaca_gateway"}
	var confFileName string

	flag.StringVar(&confFileName, "config", ".env", "")
	flag.Parse()

	cfg, err := loadConfig(confFileName)
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	app.Config = cfg

	app.initLogger()

	if err := app.initPromTail(); err != nil {
		app.Logger.WithError(err).Fatal("init promtail")
	}

	app.initHTTPClient()

	if err := app.initTgBot(); err != nil {
		app.Logger.WithError(err).Fatal("init telegram bot")
	}

	app.initMetrics()
	app.initFiber()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		app.Logger.WithField("addr", app.Config.HTTPAddr).Info("http server started")
		return app.Fiber.Listen(app.Config.HTTPAddr)
	})

	g.Go(func() error {
		<-ctx.Done()

		app.Logger.Info("http server stopping")

		done := make(chan error, 1)
		go func() { done <- app.Fiber.Shutdown() }()

		select {
		case err := <-done:
			return err
		case <-time.After(shutdownTimeout):
			return context.DeadlineExceeded
		}
	})

	if err := g.Wait(); err != nil {
		app.Logger.WithError(err).Error("http server stopped")
	}

	if app.PromTail != nil {
		app.PromTail.Close()
	}
}

func (a *App) initFiber() {
	errorHandler := api.NewErrorHandler(a.Logger)

	a.Fiber = fiber.New(fiber.Config{
		ErrorHandler:          errorHandler,
		DisableStartupMessage: true,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          15 * time.Second,
	})

	middleware := api.NewMiddleware(a.Name, a.Fiber, a.Logger, errorHandler)
	middleware.UseRequestID()
	middleware.UseMetrics()
	middleware.UseLogger()
	middleware.UseRecover()

	api.RegisterHTTPEndpoints(a.Fiber, a.initUseCases(), a.Logger)
}

func (a *App) initUseCases() api.UseCases {
	clientController := controllers.NewClientController(
		a.HTTPClient,
		a.Config.AlpacaApiKey,
		a.Config.AlpacaSecretKey,
		a.Logger,
	)

	var tgmController controllers.TgmCtrl
	if a.TGM != nil {
		tgmController = controllers.NewTgmController(
			a.TGM,
			a.Config.TelegramChatID,
		)
	}

	orderUseCase := usecasees.NewOrderUseCase(
		clientController,
		tgmController,
		a.Config.AlpacaTradingUrl,
		a.Metrics,
		a.Logger,
	)

	return api.UseCases{
		Account: usecasees.NewAccountUseCase(
			clientController,
			a.Config.AlpacaTradingUrl,
			a.Metrics,
			a.Logger,
		),
		Order: orderUseCase,
		Position: usecasees.NewPositionUseCase(
			clientController,
			tgmController,
			a.Config.AlpacaTradingUrl,
			a.Metrics,
			a.Logger,
		),
		Quote: usecasees.NewQuoteUseCase(
			clientController,
			a.Config.AlpacaDataUrl,
			a.Metrics,
			a.Logger,
		),
		Option: usecasees.NewOptionUseCase(
			clientController,
			orderUseCase,
			a.Config.AlpacaTradingUrl,
			a.Config.AlpacaDataUrl,
			a.Metrics,
			a.Logger,
		),
	}
}
