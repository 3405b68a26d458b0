package database

import (
	"cospace/internal/domain"

	"gorm.io/gorm"
)

// Migrate keeps the schema up to date. Shared by the API, the seeder and
// the test harness so they never drift apart.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.CoworkingSpace{},
		&domain.SpacePhoto{},
		&domain.CoworkingArea{},
		&domain.Reservation{},
		&domain.ReservationDetail{},
		&domain.AvailabilityRecord{},
	)
}
