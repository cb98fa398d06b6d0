// Package notify pushes short operational messages to the dispatch group
// chat. Delivery is best-effort; a down bot never blocks a job mutation.
package notify

import (
	"log"

	tgbotapi "github.com/OvyFlash/telegram-bot-api"

	"jrs-backend/internal/config"
)

type Telegram struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegram builds the notifier, or returns nil when no token is
// configured. Callers treat a nil notifier as "notifications off".
func NewTelegram(cfg *config.Config) *Telegram {
	if cfg.Telegram.Token == "" || cfg.Telegram.DispatchID == 0 {
		return nil
	}

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		log.Printf("[Notify] telegram init failed, notifications disabled: %v", err)
		return nil
	}

	log.Printf("[Notify] telegram notifications enabled as @%s", api.Self.UserName)
	return &Telegram{api: api, chatID: cfg.Telegram.DispatchID}
}

// Send posts one message to the dispatch chat asynchronously.
func (t *Telegram) Send(text string) {
	go func() {
		msg := tgbotapi.NewMessage(t.chatID, text)
		if _, err := t.api.Send(msg); err != nil {
			log.Printf("[Notify] telegram send failed: %v", err)
		}
	}()
}
