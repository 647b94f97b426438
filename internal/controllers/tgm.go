package controllers

import (
	"net/http"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
)

// maxMessageLen is the longest text the Bot API accepts in one message.
const maxMessageLen = 4096

// NewTgmBot authorizes the bot through client so every call to Telegram
// inherits its timeout.
func NewTgmBot(token, endpoint string, client *http.Client) (*tgbotapi.BotAPI, error) {
	bot, err := tgbotapi.NewBotAPIWithClient(token, endpoint, client)
	if err != nil {
		return nil, errors.Wrap(err, "authorize telegram bot")
	}
	bot.Debug = false

	return bot, nil
}

type TgmController struct {
	tgmBot *tgbotapi.BotAPI
	chatID int64
}

func NewTgmController(tgmBot *tgbotapi.BotAPI, chatID int64) *TgmController {
	return &TgmController{
		tgmBot: tgmBot,
		chatID: chatID,
	}
}

// Send posts text to the configured chat as plain text. Oversized text is
// cut at the Bot API limit.
func (c *TgmController) Send(text string) error {
	msg := tgbotapi.NewMessage(c.chatID, truncate(text, maxMessageLen))
	msg.DisableWebPagePreview = true

	if _, err := c.tgmBot.Send(msg); err != nil {
		return errors.Wrapf(err, "send to chat %d", c.chatID)
	}

	return nil
}

func truncate(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}

	runes := []rune(text)
	return string(runes[:limit])
}
