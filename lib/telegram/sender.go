package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var Instance Provider

type Provider interface {
	SendMessage(chatID int64, text string) (messageID int64, err error)
}

// Connect инициализирует клиент бота, без токена уведомления
// в телеграм не отправляются
func Connect(botToken string) error {
	Instance = &impl{}
	if botToken == "" {
		log.Warn("Токен телеграм бота не задан, уведомления в телеграм отключены")
		return nil
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return errors.Wrap(err, "ошибка подключения к телеграм боту")
	}
	log.WithField("bot", bot.Self.UserName).Info("телеграм бот подключен")
	Instance = &impl{
		bot: bot,
	}
	return nil
}

type impl struct {
	bot *tgbotapi.BotAPI
}

func (i impl) SendMessage(chatID int64, text string) (int64, error) {
	if i.bot == nil {
		return 0, nil
	}
	msg := tgbotapi.NewMessage(chatID, text)
	sent, err := i.bot.Send(msg)
	if err != nil {
		return 0, errors.Wrap(err, "ошибка отправки сообщения в телеграм")
	}
	return int64(sent.MessageID), nil
}
