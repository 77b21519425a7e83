package service

import (
	"github.com/MKhiriev/rent-pe-easy/internal/config"
	"github.com/MKhiriev/rent-pe-easy/internal/logger"
	"github.com/MKhiriev/rent-pe-easy/internal/store"
)

type Services struct {
	AuthService     AuthService
	PropertyService PropertyService
	FavoriteService FavoriteService
	AppInfoService  AppInfoService
	HealthService   HealthService
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	authService := NewAuthService(
		storages.UserRepository,
		storages.RefreshTokenRepository,
		NewTokenIssuer(cfg.App),
		cfg.App,
		logger,
	)
	propertyService := NewPropertyService(storages.PropertyRepository, logger)

	return &Services{
		AuthService:     NewAuthValidationService().Wrap(authService),
		PropertyService: NewPropertyValidationService().Wrap(propertyService),
		FavoriteService: NewFavoriteService(
			storages.FavoriteRepository,
			storages.PropertyRepository,
			storages.UserRepository,
			logger,
		),
		AppInfoService: appInfoService,
		HealthService:  NewHealthService(storages.Pinger, logger),
	}, nil
}
