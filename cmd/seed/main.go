// Seeds a demo user and company profile for local development.
package main

import (
	"context"
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"companyhub/internal/config"
	"companyhub/internal/db"
	"companyhub/internal/model"
	"companyhub/internal/repository"
)

const (
	demoEmail    = "demo@example.com"
	demoPassword = "Passw0rd!"
)

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.CompanyProfile{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	companyRepo := repository.NewCompanyRepository(gormDB)

	user, err := userRepo.FindByEmail(ctx, demoEmail)
	switch {
	case err == nil:
		log.Printf("Demo user already exists: %s", user.ID)
	case errors.Is(err, gorm.ErrRecordNotFound):
		hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), 12)
		if err != nil {
			log.Fatalf("hash password: %v", err)
		}
		user = &model.User{
			Email:        demoEmail,
			PasswordHash: string(hash),
			FullName:     "Demo User",
			Gender:       model.GenderOther,
			MobileNo:     "+15550000000",
			SignupType:   model.SignupTypeEmail,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("create demo user: %v", err)
		}
		log.Printf("Created demo user %s (password %q)", user.ID, demoPassword)
	default:
		log.Fatalf("find demo user: %v", err)
	}

	if _, err := companyRepo.FindByOwnerID(ctx, user.ID); err == nil {
		log.Println("Demo company profile already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("find demo profile: %v", err)
	}

	website := "https://acme.example.com"
	profile := &model.CompanyProfile{
		OwnerID:     user.ID,
		CompanyName: "Acme Widgets",
		Address:     "1 Infinite Loop",
		City:        "Springfield",
		State:       "IL",
		Country:     "US",
		PostalCode:  "62701",
		Industry:    "Manufacturing",
		Website:     &website,
		SocialLinks: map[string]string{"linkedin": "https://linkedin.com/company/acme"},
	}
	if err := companyRepo.Create(ctx, profile); err != nil {
		log.Fatalf("create demo profile: %v", err)
	}
	log.Printf("Created demo company profile %s", profile.ID)
}
