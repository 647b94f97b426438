package main

import (
	"alpaca/internal/controllers"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (a *App) initTgBot() error {
	if !a.Config.TelegramEnabled() {
		return nil
	}

	bot, err := controllers.NewTgmBot(a.Config.TelegramApiToken, tgbotapi.APIEndpoint, a.HTTPClient)
	if err != nil {
		return err
	}

	a.TGM = bot

	return nil
}
