package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&Staff{},
		&Event{},
		&ExchangeRate{},
		&Representative{},
		&Student{},
		&Product{},
		&Order{},
		&OrderLine{},
	)
}
