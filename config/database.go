package config

import (
	"fmt"
	"travel-request-backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		GetEnv("DB_USER", "root"),
		GetEnv("DB_PASS", ""),
		GetEnv("DB_HOST", "127.0.0.1"),
		GetEnvAsInt("DB_PORT", 3306),
		GetEnv("DB_NAME", "travel_requests"),
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("failed to connect to database: " + err.Error())
	}

	// Auto migration keeps the schema in sync with the model structs
	db.AutoMigrate(&model.User{})
	db.AutoMigrate(&model.Employee{})
	db.AutoMigrate(&model.Admin{})
	db.AutoMigrate(&model.TravelRequest{})

	DB = db
}
