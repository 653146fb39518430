package telegram

import (
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"bollwerkBot/internal/pkg/logger/sl"
)

// Notifier рассылает уведомления фиксированному набору администраторов.
// Доставка best-effort: сбой по одному получателю логируется и не мешает
// остальным, ошибка наружу не возвращается.
type Notifier struct {
	bot      *tgbotapi.BotAPI
	adminIDs []int64
	log      *slog.Logger
}

func NewNotifier(log *slog.Logger, bot *tgbotapi.BotAPI, adminIDs []int64) *Notifier {
	return &Notifier{
		bot:      bot,
		adminIDs: adminIDs,
		log:      log.With(slog.String("component", "notifier")),
	}
}

func (n *Notifier) Broadcast(text string) {
	for _, adminID := range n.adminIDs {
		msg := tgbotapi.NewMessage(adminID, text)
		if _, err := n.bot.Send(msg); err != nil {
			n.log.Warn("failed to notify admin",
				slog.Int64("adminID", adminID),
				sl.Err(err),
			)
		}
	}
}
