package main

import (
	"fmt"
	"log"
	"time"
	"travel-request-backend/config"
	"travel-request-backend/internal/model"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeds a superuser admin, one manager and two employees reporting to them.
// Safe to run repeatedly: existing usernames are skipped.
func main() {
	fmt.Println("Seeding database...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	config.ConnectDB()
	db := config.DB

	admin := seedUser(db, model.User{
		Username:    "admin",
		FirstName:   "System",
		LastName:    "Admin",
		Email:       "admin@travel-requests.local",
		IsSuperuser: true,
		IsActive:    true,
	}, "admin123")
	if admin != nil {
		db.Create(&model.Admin{UserID: admin.ID})
	}

	managerUser := seedUser(db, model.User{
		Username:  "mwilson",
		FirstName: "Maria",
		LastName:  "Wilson",
		Email:     "maria.wilson@travel-requests.local",
		IsActive:  true,
	}, "manager123")

	var manager model.Employee
	if managerUser != nil {
		manager = model.Employee{
			UserID:      managerUser.ID,
			IsManager:   true,
			Status:      model.EmployeeStatusActive,
			DateCreated: today(),
		}
		db.Create(&manager)
	} else {
		db.Joins("JOIN users ON users.id = employees.user_id").
			Where("users.username = ?", "mwilson").First(&manager)
	}

	for _, e := range []struct {
		username, first, last, password string
	}{
		{"jdoe", "John", "Doe", "employee123"},
		{"asmith", "Alice", "Smith", "employee123"},
	} {
		u := seedUser(db, model.User{
			Username:  e.username,
			FirstName: e.first,
			LastName:  e.last,
			Email:     e.username + "@travel-requests.local",
			IsActive:  true,
		}, e.password)
		if u != nil && manager.ID != 0 {
			db.Create(&model.Employee{
				UserID:      u.ID,
				ManagerID:   &manager.ID,
				Status:      model.EmployeeStatusActive,
				DateCreated: today(),
			})
		}
	}

	fmt.Println("Seeding done!")
}

func seedUser(db *gorm.DB, user model.User, password string) *model.User {
	var existing model.User
	if err := db.Where("username = ?", user.Username).First(&existing).Error; err == nil {
		fmt.Printf("user %s already exists, skipping\n", user.Username)
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password for %s: %v", user.Username, err)
	}
	user.Password = string(hashed)

	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("create user %s: %v", user.Username, err)
	}
	return &user
}

func today() string {
	return time.Now().Format("2006-01-02")
}
