package main

import (
	"alpaca/internal/usecasees"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gofiber/fiber/v2"
	"github.com/ic2hrmk/promtail"
	"github.com/sirupsen/logrus"
)

type App struct {
	Name string

	Config     Config
	Logger     *logrus.Logger
	HTTPClient *http.Client
	TGM        *tgbotapi.BotAPI
	PromTail   promtail.Client
	Metrics    usecasees.Metrics
	Fiber      *fiber.App
}
