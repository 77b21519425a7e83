package store

import "github.com/MKhiriev/rent-pe-easy/internal/logger"

// Storages bundles every repository backed by one database connection.
type Storages struct {
	UserRepository         UserRepository
	RefreshTokenRepository RefreshTokenRepository
	PropertyRepository     PropertyRepository
	FavoriteRepository     FavoriteRepository
	Pinger                 Pinger
}

// NewStorages builds all repositories on top of db.
func NewStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		UserRepository:         NewUserRepository(db, logger),
		RefreshTokenRepository: NewRefreshTokenRepository(db, logger),
		PropertyRepository:     NewPropertyRepository(db, logger),
		FavoriteRepository:     NewFavoriteRepository(db, logger),
		Pinger:                 db,
	}
}
