package authhandler

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"shop-tasks-backend/db"
	usersstore "shop-tasks-backend/lib/users/store"
	authhelpers "shop-tasks-backend/lib/utils/auth-helpers"
	authutils "shop-tasks-backend/lib/utils/auth-utils"
	authapimodels "shop-tasks-backend/models/api/auth"
)

type Provider interface {
	Login(userName, password string) (response authapimodels.JWTResponse, err error)
	Refresh(refreshToken string) (response authapimodels.JWTResponse, err error)
	Profile(userID string) (view *authapimodels.ProfileView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: usersstore.NewInstance(db.DB),
	}
}

type impl struct {
	store usersstore.Provider
}

func (i impl) Login(userName, password string) (authapimodels.JWTResponse, error) {
	logger := log.WithField("username", userName)
	user, err := i.store.FindByUserName(userName)
	if err != nil {
		logger.
			WithError(err).
			Error("ошибка поиска пользователя по логину")
		return authapimodels.JWTResponse{}, err
	}
	if user == nil {
		logger.Debug("пользователь с таким логином не найден")
		return authapimodels.JWTResponse{}, errors.New("неверный логин или пароль")
	}
	if authhelpers.GetMD5Hash(password) != user.Password {
		logger.Debug("пользователь не прошел проверку пароля")
		return authapimodels.JWTResponse{}, errors.New("неверный логин или пароль")
	}
	token, err := authutils.GetToken(user.ID, user.GetDisplayName(), user.Role)
	if err != nil {
		logger.WithError(err).Error("ошибка генерации JWT")
		return authapimodels.JWTResponse{}, err
	}
	refreshToken, err := authutils.GetRefreshToken(user.ID, user.GetDisplayName())
	if err != nil {
		logger.WithError(err).Error("ошибка генерации refresh токена")
		return authapimodels.JWTResponse{}, err
	}
	return authapimodels.JWTResponse{
		Token:        token,
		RefreshToken: refreshToken,
	}, nil
}

func (i impl) Refresh(refreshToken string) (authapimodels.JWTResponse, error) {
	userID, err := authutils.ParseRefreshToken(refreshToken)
	if err != nil {
		return authapimodels.JWTResponse{}, errors.New("refresh токен недействителен")
	}
	user, err := i.store.GetByID(userID)
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	if user == nil {
		return authapimodels.JWTResponse{}, errors.New("пользователь не найден")
	}
	token, err := authutils.GetToken(user.ID, user.GetDisplayName(), user.Role)
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	newRefreshToken, err := authutils.GetRefreshToken(user.ID, user.GetDisplayName())
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	return authapimodels.JWTResponse{
		Token:        token,
		RefreshToken: newRefreshToken,
	}, nil
}

func (i impl) Profile(userID string) (*authapimodels.ProfileView, error) {
	user, err := i.store.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	view := authapimodels.ProfileView{
		ID:       user.ID,
		UserName: user.UserName,
		Role:     user.Role.ToHuman(),
	}
	if user.Email != nil {
		view.Email = *user.Email
	}
	return &view, nil
}
