package database

import (
	"errors"
	"fmt"
	"time"

	"property-listing-portal/internal/config"
	"property-listing-portal/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ErrNotFound is returned when a property id does not resolve.
var ErrNotFound = errors.New("property not found")

// ValidationError marks a request that failed schema validation. Handlers map
// it to a 400 response.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// GormDB wraps the GORM connection and exposes the property record store.
type GormDB struct {
	db       *gorm.DB
	validate *validator.Validate
}

// NewGormDB opens a connection for the configured database type
// (mysql or postgres) and pings it.
func NewGormDB(cfg config.DatabaseConfig) (*GormDB, error) {
	var dialector gorm.Dialector

	switch cfg.Type {
	case "mysql":
		m := cfg.MySQL
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			m.User, m.Password, m.Host, m.Port, m.Database)
		dialector = mysql.Open(dsn)
	case "postgres", "":
		p := cfg.Postgres
		sslmode := p.SSLMode
		if sslmode == "" {
			sslmode = "disable"
		}
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			p.Host, p.Port, p.User, p.Password, p.Database, sslmode)
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	// Test connection
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}

	return NewGormDBFromDB(db), nil
}

// NewGormDBFromDB creates a GormDB wrapper from an existing gorm.DB instance
func NewGormDBFromDB(db *gorm.DB) *GormDB {
	return &GormDB{db: db, validate: validator.New()}
}

func (gdb *GormDB) Close() error {
	sqlDB, err := gdb.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// InitSchema creates tables using GORM AutoMigrate
func (gdb *GormDB) InitSchema() error {
	return gdb.db.AutoMigrate(
		&models.Property{},
		&models.PropertyImage{},
	)
}

// CreateProperty validates and persists a new property with its images.
// The id and timestamps are assigned here; at least one image is required.
func (gdb *GormDB) CreateProperty(p *models.Property) error {
	if len(p.Images) == 0 {
		return &ValidationError{Message: "at least one image is required"}
	}
	if err := gdb.validate.Struct(p); err != nil {
		return &ValidationError{Message: err.Error()}
	}

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	prepareImages(p)

	return gdb.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Images").Create(p).Error; err != nil {
			return err
		}
		return tx.Create(&p.Images).Error
	})
}

// GetProperties returns one page of properties ordered by creation time
// descending, with exact-match filters on property type and city.
func (gdb *GormDB) GetProperties(filters PropertyFilters) (*PaginatedResult, error) {
	page, pageSize := filters.normalize()

	query := gdb.db.Model(&models.Property{})
	if filters.PropertyType != "" {
		query = query.Where("property_type = ?", filters.PropertyType)
	}
	if filters.City != "" {
		query = query.Where("location_city = ?", filters.City)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var properties []models.Property
	err := query.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&properties).Error
	if err != nil {
		return nil, err
	}

	return &PaginatedResult{
		Properties: properties,
		Total:      total,
		Page:       page,
		Pages:      pageCount(total, pageSize),
	}, nil
}

// GetPropertyByID retrieves a property with its images, or ErrNotFound.
func (gdb *GormDB) GetPropertyByID(id string) (*models.Property, error) {
	var property models.Property
	err := gdb.db.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Where("id = ?", id).
		First(&property).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &property, nil
}

// UpdateProperty writes the full next-state record computed by the merge
// logic. The image set is replaced wholesale; the record is re-validated
// against the schema before any write.
func (gdb *GormDB) UpdateProperty(p *models.Property) error {
	if err := gdb.validate.Struct(p); err != nil {
		return &ValidationError{Message: err.Error()}
	}
	prepareImages(p)

	return gdb.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Omit("Images").Save(p)
		if result.Error != nil {
			return result.Error
		}
		if err := tx.Where("property_id = ?", p.ID).Delete(&models.PropertyImage{}).Error; err != nil {
			return err
		}
		if len(p.Images) > 0 {
			if err := tx.Create(&p.Images).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteProperty removes a property and, through the cascade constraint, its
// images. Returns ErrNotFound when the id does not resolve.
func (gdb *GormDB) DeleteProperty(id string) error {
	return gdb.db.Transaction(func(tx *gorm.DB) error {
		// Explicit child delete in case the backend skipped the FK constraint.
		if err := tx.Where("property_id = ?", id).Delete(&models.PropertyImage{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.Property{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// prepareImages assigns ids, owner references, display order and upload
// timestamps to any images that don't have them yet.
func prepareImages(p *models.Property) {
	now := time.Now()
	for i := range p.Images {
		img := &p.Images[i]
		if img.ID == "" {
			img.ID = uuid.NewString()
		}
		img.PropertyID = p.ID
		img.SortOrder = i
		if img.UploadDate.IsZero() {
			img.UploadDate = now
		}
	}
}
