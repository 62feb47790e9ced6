package db

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// NewMySQL returns a pooled GORM DB backed by MySQL. The DSN must set
// parseTime=True so DATETIME columns scan into time.Time.
func NewMySQL(dsn string) (*gorm.DB, error) {
	return openPooled("mysql", mysql.New(mysql.Config{
		DSN:               dsn,
		DefaultStringSize: 255,
	}))
}
