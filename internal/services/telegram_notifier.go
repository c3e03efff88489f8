package services

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"nusacrm/internal/models"
)

// TelegramNotifier pushes deal decisions taken through this client into the
// sales-team chat. Entirely optional; a nil notifier is a no-op.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	dryRun bool
}

func NewTelegramNotifier(botToken string, chatID int64, dryRun bool) (*TelegramNotifier, error) {
	if botToken == "" || chatID == 0 {
		return nil, nil
	}
	if dryRun {
		return &TelegramNotifier{chatID: chatID, dryRun: true}, nil
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

// DealEvent fires after a transition succeeded on the backend. Failures are
// logged and swallowed; chat delivery must never fail a workflow.
func (t *TelegramNotifier) DealEvent(deal *models.Deal, action Action, note string) {
	if t == nil || deal == nil {
		return
	}
	text := fmt.Sprintf("Deal %s (%s): %s", deal.DealNumber, deal.Customer.Name, actionPhrase(action))
	if note != "" {
		text += "\nNote: " + note
	}
	if t.dryRun {
		log.Printf("[tg][dry-run] chatID=%d text=%q", t.chatID, text)
		return
	}
	msg := tgbotapi.NewMessage(t.chatID, text)
	if _, err := t.bot.Send(msg); err != nil {
		log.Printf("[tg][send] chatID=%d: %v", t.chatID, err)
	}
}

func actionPhrase(action Action) string {
	switch action {
	case ActionApprove:
		return "approved"
	case ActionReject:
		return "rejected"
	case ActionActivate:
		return "services activated"
	case ActionSubmit:
		return "submitted for approval"
	default:
		return string(action)
	}
}
