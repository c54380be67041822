package handlers

import (
	"socialhub/internal/config"
	"socialhub/internal/service"
)

type Handlers struct {
	UserService         service.UserService
	AuthService         service.AuthService
	PostService         service.PostService
	NotificationService service.NotificationService
	HealthService       service.HealthService
	Cfg                 *config.Config
}

func NewHandlers(service *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		UserService:         service.User,
		AuthService:         service.Auth,
		PostService:         service.Post,
		NotificationService: service.Notification,
		HealthService:       service.Health,
		Cfg:                 config,
	}
}
