package main

import (
	"log"
	"os"

	"facility-services-be/internal/model"
	"facility-services-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	seedAreas(db)
	seedCatalog(db)
	seedAdmin(db)

	color.Green("✅ Seeding completed!")
}

func seedAreas(db *gorm.DB) {
	log.Println("Seeding Areas...")

	areas := []model.Area{
		{Code: "norte", Name: "Zona Norte"},
		{Code: "sul", Name: "Zona Sul"},
		{Code: "leste", Name: "Zona Leste"},
		{Code: "oeste", Name: "Zona Oeste"},
		{Code: "centro", Name: "Centro"},
	}

	for _, a := range areas {
		var existing model.Area
		if err := db.Where("code = ?", a.Code).First(&existing).Error; err == nil {
			log.Printf("Area '%s' already exists, skipping...", a.Code)
			continue
		}

		if err := db.Create(&a).Error; err != nil {
			log.Printf("Error creating area '%s': %v", a.Code, err)
		} else {
			log.Printf("Created area: %s (%s)", a.Name, a.Code)
		}
	}
}

func seedCatalog(db *gorm.DB) {
	log.Println("Seeding Service Catalog...")

	items := []model.ServiceCatalogItem{
		{Code: "limpeza-geral", Name: "Limpeza Geral", Description: "Limpeza completa das instalações", Category: "limpeza", BaseDurationMinutes: 240, IsActive: true},
		{Code: "limpeza-vidros", Name: "Limpeza de Vidros", Description: "Limpeza de fachadas e janelas", Category: "limpeza", BaseDurationMinutes: 180, IsActive: true},
		{Code: "manutencao-eletrica", Name: "Manutenção Elétrica", Description: "Reparos e inspeção da rede elétrica", Category: "manutencao", BaseDurationMinutes: 120, IsActive: true},
		{Code: "manutencao-hidraulica", Name: "Manutenção Hidráulica", Description: "Reparos hidráulicos e desentupimento", Category: "manutencao", BaseDurationMinutes: 120, IsActive: true},
		{Code: "jardinagem", Name: "Jardinagem", Description: "Poda e conservação de áreas verdes", Category: "conservacao", BaseDurationMinutes: 300, IsActive: true},
		{Code: "dedetizacao", Name: "Dedetização", Description: "Controle de pragas urbanas", Category: "conservacao", BaseDurationMinutes: 90, IsActive: true},
	}

	for _, item := range items {
		var existing model.ServiceCatalogItem
		if err := db.Where("code = ?", item.Code).First(&existing).Error; err == nil {
			log.Printf("Catalog item '%s' already exists, skipping...", item.Code)
			continue
		}

		if err := db.Create(&item).Error; err != nil {
			log.Printf("Error creating catalog item '%s': %v", item.Code, err)
		} else {
			log.Printf("Created catalog item: %s (%s)", item.Name, item.Code)
		}
	}
}

func seedAdmin(db *gorm.DB) {
	log.Println("Seeding Admin User...")

	email := os.Getenv("SEED_ADMIN_EMAIL")
	if email == "" {
		email = "admin@facility.local"
	}
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
		color.Yellow("Warn: SEED_ADMIN_PASSWORD not set, using default credentials")
	}

	var existing model.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Printf("Admin '%s' already exists, skipping...", email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error hashing admin password: %v", err)
	}
	hashStr := string(hash)

	admin := model.User{
		Email:        email,
		PasswordHash: &hashStr,
		FullName:     "Administrador",
		Role:         "admin",
		IsActive:     true,
	}

	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("Error creating admin user: %v", err)
	}
	log.Printf("Created admin user: %s", email)
}
