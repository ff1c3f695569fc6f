package main

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"saas-admin-backend/internal/config"
	"saas-admin-backend/internal/database"
	"saas-admin-backend/internal/database/models"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Simple structures that directly match DB schema
type ServiceTypeData struct {
	Slug        string `yaml:"slug"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Status      string `yaml:"status"`
}

type CompanyData struct {
	Name         string                 `yaml:"name"`
	Domain       string                 `yaml:"domain"`
	ContactEmail string                 `yaml:"contact_email"`
	Phone        string                 `yaml:"phone,omitempty"`
	Status       string                 `yaml:"status"`
	Plan         string                 `yaml:"plan"`
	Services     []string               `yaml:"services,omitempty"`
	Metadata     map[string]interface{} `yaml:"metadata,omitempty"`
}

type UserData struct {
	Email       string                 `yaml:"email"`
	CompanyName string                 `yaml:"company_name,omitempty"`
	FirstName   string                 `yaml:"first_name"`
	LastName    string                 `yaml:"last_name"`
	Role        string                 `yaml:"role"`
	IsActive    bool                   `yaml:"is_active"`
	Metadata    map[string]interface{} `yaml:"metadata,omitempty"`
}

// File structures
type ServiceTypesFile struct {
	ServiceTypes []ServiceTypeData `yaml:"service_types"`
}

type CompaniesFile struct {
	Companies []CompanyData `yaml:"companies"`
}

type UsersFile struct {
	Users []UserData `yaml:"users"`
}

func main() {
	log.Println("Loading initial data from YAML files...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database with retry (for dockerized Postgres startup)
	db, err := connectWithRetry(cfg.DatabaseURL, 60, time.Second)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Load data from YAML files
	if err := loadDataFromYAMLFiles(db, "scripts/data"); err != nil {
		log.Fatalf("Failed to load data from YAML files: %v", err)
	}

	log.Println("Initial data loaded successfully!")
}

// connectWithRetry attempts to initialize the DB with retries to wait for Postgres readiness.
func connectWithRetry(dsn string, maxAttempts int, delay time.Duration) (*gorm.DB, error) {
	// Suppress verbose GORM logging during data loading
	opts := &database.Options{
		LogLevel: logger.Silent,
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, err := database.Initialize(dsn, opts)
		if err == nil {
			return db, nil
		}
		// Only log every 10 attempts to reduce noise
		if attempt%10 == 0 || attempt == maxAttempts {
			log.Printf("Database not ready (%d/%d): %v", attempt, maxAttempts, err)
		}
		time.Sleep(delay)
	}
	return nil, fmt.Errorf("database not ready after %d attempts", maxAttempts)
}

func loadDataFromYAMLFiles(db *gorm.DB, dataDir string) error {
	serviceTypes, err := loadServiceTypes(dataDir)
	if err != nil {
		return fmt.Errorf("failed to load service types: %w", err)
	}

	companies, err := loadCompanies(dataDir)
	if err != nil {
		return fmt.Errorf("failed to load companies: %w", err)
	}

	users, err := loadUsers(dataDir)
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}

	// Create service types first
	typeMap := make(map[string]*models.ServiceType)
	typesCreated := 0
	for _, typeData := range serviceTypes {
		serviceType, created, err := createServiceType(db, typeData)
		if err != nil {
			return fmt.Errorf("failed to create service type %s: %w", typeData.Slug, err)
		}
		typeMap[typeData.Slug] = serviceType
		if created {
			typesCreated++
		}
	}
	log.Printf("Service types: %d created, %d total", typesCreated, len(serviceTypes))

	// Create companies
	companyMap := make(map[string]*models.Company)
	companiesCreated := 0
	for _, companyData := range companies {
		company, created, err := createCompany(db, companyData)
		if err != nil {
			return fmt.Errorf("failed to create company %s: %w", companyData.Name, err)
		}
		companyMap[companyData.Name] = company
		if created {
			companiesCreated++
		}
	}
	log.Printf("Companies: %d created, %d total", companiesCreated, len(companies))

	// Provision service instances for the slugs each company lists
	instancesCreated := 0
	for _, companyData := range companies {
		company := companyMap[companyData.Name]
		for _, slug := range companyData.Services {
			serviceType := typeMap[slug]
			if serviceType == nil {
				log.Printf("Warning: service type %s not found for company %s", slug, companyData.Name)
				continue
			}
			created, err := createServiceInstance(db, company, serviceType)
			if err != nil {
				log.Printf("Warning: failed to create instance %s for company %s: %v", slug, companyData.Name, err)
				continue
			}
			if created {
				instancesCreated++
			}
		}
	}
	log.Printf("Service instances: %d created", instancesCreated)

	// Create users
	usersCreated := 0
	for _, userData := range users {
		_, created, err := createUser(db, userData, companyMap)
		if err != nil {
			return fmt.Errorf("failed to create user %s: %w", userData.Email, err)
		}
		if created {
			usersCreated++
		}
	}
	log.Printf("Users: %d created, %d total", usersCreated, len(users))

	return nil
}

func loadServiceTypes(dataDir string) ([]ServiceTypeData, error) {
	var allTypes []ServiceTypeData

	err := filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.HasSuffix(path, ".yaml") && strings.Contains(path, "service_types") {
			var file ServiceTypesFile
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			if err := yaml.Unmarshal(data, &file); err != nil {
				return err
			}

			allTypes = append(allTypes, file.ServiceTypes...)
		}
		return nil
	})

	return allTypes, err
}

func loadCompanies(dataDir string) ([]CompanyData, error) {
	var allCompanies []CompanyData

	err := filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.HasSuffix(path, ".yaml") && strings.Contains(path, "companies") {
			var file CompaniesFile
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			if err := yaml.Unmarshal(data, &file); err != nil {
				return err
			}

			allCompanies = append(allCompanies, file.Companies...)
		}
		return nil
	})

	return allCompanies, err
}

func loadUsers(dataDir string) ([]UserData, error) {
	var allUsers []UserData

	err := filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.HasSuffix(path, ".yaml") && strings.Contains(path, "users") {
			var file UsersFile
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			if err := yaml.Unmarshal(data, &file); err != nil {
				return err
			}

			allUsers = append(allUsers, file.Users...)
		}
		return nil
	})

	return allUsers, err
}

func createServiceType(db *gorm.DB, typeData ServiceTypeData) (*models.ServiceType, bool, error) {
	var serviceType models.ServiceType
	if err := db.Where("slug = ?", typeData.Slug).First(&serviceType).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			status := models.ServiceStatusActive
			if typeData.Status != "" {
				status = models.ServiceStatus(typeData.Status)
			}

			serviceType = models.ServiceType{
				Slug:        typeData.Slug,
				Title:       typeData.Title,
				Description: typeData.Description,
				Status:      status,
			}

			if err := db.Create(&serviceType).Error; err != nil {
				return nil, false, fmt.Errorf("failed to create service type: %w", err)
			}
			return &serviceType, true, nil
		}
		return nil, false, fmt.Errorf("failed to query service type: %w", err)
	}

	return &serviceType, false, nil
}

func createCompany(db *gorm.DB, companyData CompanyData) (*models.Company, bool, error) {
	var company models.Company
	if err := db.Where("name = ?", companyData.Name).First(&company).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			metadataJSON, _ := json.Marshal(companyData.Metadata)

			status := models.CompanyStatusActive
			if companyData.Status != "" {
				status = models.CompanyStatus(companyData.Status)
			}

			company = models.Company{
				Name:         companyData.Name,
				Domain:       companyData.Domain,
				ContactEmail: companyData.ContactEmail,
				Phone:        companyData.Phone,
				Status:       status,
				Plan:         companyData.Plan,
				Metadata:     metadataJSON,
			}

			if err := db.Create(&company).Error; err != nil {
				return nil, false, fmt.Errorf("failed to create company: %w", err)
			}
			return &company, true, nil
		}
		return nil, false, fmt.Errorf("failed to query company: %w", err)
	}

	return &company, false, nil
}

func createServiceInstance(db *gorm.DB, company *models.Company, serviceType *models.ServiceType) (bool, error) {
	var instance models.ServiceInstance
	err := db.Where("company_id = ? AND service_type_id = ?", company.ID, serviceType.ID).First(&instance).Error
	if err == nil {
		return false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return false, fmt.Errorf("failed to query service instance: %w", err)
	}

	instance = models.ServiceInstance{
		CompanyID:     company.ID,
		ServiceTypeID: serviceType.ID,
		Status:        models.ServiceStatusActive,
	}

	if err := db.Create(&instance).Error; err != nil {
		return false, fmt.Errorf("failed to create service instance: %w", err)
	}
	return true, nil
}

func createUser(db *gorm.DB, userData UserData, companyMap map[string]*models.Company) (*models.User, bool, error) {
	var companyID *uuid.UUID
	if userData.CompanyName != "" {
		company := companyMap[userData.CompanyName]
		if company == nil {
			return nil, false, fmt.Errorf("company %s not found for user %s", userData.CompanyName, userData.Email)
		}
		companyID = &company.ID
	}

	var user models.User
	if err := db.Where("email = ?", userData.Email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			metadataJSON, _ := json.Marshal(userData.Metadata)

			user = models.User{
				CompanyID: companyID,
				Email:     userData.Email,
				FirstName: userData.FirstName,
				LastName:  userData.LastName,
				Role:      models.UserRole(userData.Role),
				IsActive:  userData.IsActive,
				Metadata:  metadataJSON,
			}

			if err := db.Create(&user).Error; err != nil {
				return nil, false, fmt.Errorf("failed to create user: %w", err)
			}
			return &user, true, nil
		}
		return nil, false, fmt.Errorf("failed to query user: %w", err)
	}

	return &user, false, nil
}
