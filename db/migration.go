package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	dbmodels "shop-tasks-backend/models/db"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.User{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры User")
	}
	if err := DB.AutoMigrate(&dbmodels.EmployeeLabel{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры EmployeeLabel")
	}
	if err := DB.AutoMigrate(&dbmodels.Employee{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Employee")
	}
	if err := DB.AutoMigrate(&dbmodels.Task{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Task")
	}
	if err := DB.AutoMigrate(&dbmodels.TaskComment{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры TaskComment")
	}
	if err := DB.AutoMigrate(&dbmodels.TaskSequence{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры TaskSequence")
	}
	if err := DB.AutoMigrate(&dbmodels.Routine{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Routine")
	}
	if err := DB.AutoMigrate(&dbmodels.Attendance{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Attendance")
	}
	if err := DB.AutoMigrate(&dbmodels.Notification{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Notification")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
