package notify

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type TelegramSender struct {
	bot *tgbotapi.BotAPI
}

func NewTelegram(token string) (*TelegramSender, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("init telegram bot: %w", err)
	}
	return &TelegramSender{bot: bot}, nil
}

func (s *TelegramSender) Kind() string { return "telegram" }

// Send delivers one job as an HTML message. Endpoint is the numeric chat id.
func (s *TelegramSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return &SendError{Kind: "telegram", Err: err}
	}

	chatID, err := strconv.ParseInt(msg.Endpoint, 10, 64)
	if err != nil {
		return &SendError{Kind: "telegram", Err: fmt.Errorf("bad chat id %q: %w", msg.Endpoint, err)}
	}

	text := fmt.Sprintf(
		"🚨 <b>%s</b>\n"+
			"🏢 %s\n"+
			"📍 %s\n"+
			"📁 %s · 💼 %s\n"+
			"🔗 <a href=\"%s\">Apply Now</a>",
		msg.Title, msg.OrgName, msg.Location, msg.Department, msg.JobType, msg.URL,
	)

	m := tgbotapi.NewMessage(chatID, text)
	m.ParseMode = "HTML"
	if _, err := s.bot.Send(m); err != nil {
		return &SendError{Kind: "telegram", Err: err}
	}
	return nil
}
