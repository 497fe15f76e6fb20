package initializers

import (
	log "github.com/sirupsen/logrus"

	"shop-tasks-backend/config"
	"shop-tasks-backend/lib/telegram"
)

func InitTelegram() {
	err := telegram.Connect(config.Conf.Telegram.BotToken)
	if err != nil {
		log.WithError(err).Error("Ошибка инициализации телеграм бота")
	}
}
