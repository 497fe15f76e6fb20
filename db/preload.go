package db

import (
	log "github.com/sirupsen/logrus"

	"shop-tasks-backend/config"
	usersstore "shop-tasks-backend/lib/users/store"
	authhelpers "shop-tasks-backend/lib/utils/auth-helpers"
	"shop-tasks-backend/models"
	dbmodels "shop-tasks-backend/models/db"
)

func InitPreload() {
	addOwner()
}

func addOwner() {
	store := usersstore.NewInstance(DB)
	if config.Conf.Admin.UserName == "" {
		owners, err := store.ListOwners()
		if err != nil {
			log.WithError(err).Error("ошибка проверки наличия владельца")
			return
		}
		if len(owners) == 0 {
			log.Warn("владелец не добавлен, отсутствует настройка ADMIN_USERNAME")
		}
		return
	}
	existedRec, err := store.FindByUserName(config.Conf.Admin.UserName)
	if err != nil {
		log.WithError(err).Error("ошибка добавления владельца")
		return
	}
	if existedRec != nil {
		return
	}
	rec := dbmodels.User{
		UserName: config.Conf.Admin.UserName,
		Password: authhelpers.GetMD5Hash(config.Conf.Admin.Password),
		Role:     models.UserRoleOwner,
	}
	if config.Conf.Admin.Email != "" {
		email := config.Conf.Admin.Email
		rec.Email = &email
	}
	_, err = store.Create(rec)
	if err != nil {
		log.WithError(err).Error("ошибка добавления владельца")
	}
}
