// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/contact"
	"github.com/your-org/storefront-backend/internal/domain/gallery"
	"github.com/your-org/storefront-backend/internal/domain/offering"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/domain/settings"
	"github.com/your-org/storefront-backend/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Dependency order: base tables first, dependent tables after
	models := []interface{}{
		&user.User{},
		&product.Product{},

		&cart.Cart{},
		&cart.CartItem{},

		&order.Order{},
		&order.OrderItem{},

		&offering.Offering{},
		&gallery.Item{},
		&contact.Request{},
		&settings.SiteSettings{},
	}

	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_email_active ON users(email, is_active)",

		// Product indexes
		"CREATE INDEX IF NOT EXISTS idx_products_category ON products(category)",
		"CREATE INDEX IF NOT EXISTS idx_products_featured ON products(is_featured, featured_order)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",

		// Cart indexes
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_carts_user_email ON carts(user_email)",
		"CREATE INDEX IF NOT EXISTS idx_cart_items_cart_product ON cart_items(cart_id, product_id)",

		// Order indexes
		"CREATE INDEX IF NOT EXISTS idx_orders_user_email ON orders(user_email)",
		"CREATE INDEX IF NOT EXISTS idx_orders_status_created ON orders(status, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)",

		// Contact indexes
		"CREATE INDEX IF NOT EXISTS idx_contact_forms_status ON contact_forms(status, created_at DESC)",

		// Gallery indexes
		"CREATE INDEX IF NOT EXISTS idx_gallery_category ON gallery(category)",
	}

	successCount := 0
	failCount := 0

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			log.Printf("⚠️ Failed to create index: %v", err)
			failCount++
		} else {
			successCount++
		}
	}

	log.Printf("✅ Created %d indexes successfully (%d failed)", successCount, failCount)
	return nil
}

// SeedInitialData inserts initial data into the database
func (m *Migration) SeedInitialData() error {
	log.Println("🌱 Seeding initial data...")

	if err := m.seedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}
	if err := m.seedSiteSettings(); err != nil {
		return fmt.Errorf("failed to seed site settings: %w", err)
	}
	if err := m.seedSampleProducts(); err != nil {
		return fmt.Errorf("failed to seed sample products: %w", err)
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}

func (m *Migration) seedAdminUser() error {
	log.Println("👤 Seeding admin user...")

	var existing user.User
	if m.db.Where("email = ?", "admin@example.com").First(&existing).Error == nil {
		log.Println("⏭️ Admin user already exists")
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("admin123"), 10)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin := user.User{
		Email:    "admin@example.com",
		Password: string(hashedPassword),
		FullName: "Site Admin",
		IsActive: true,
		IsAdmin:  true,
	}
	if err := m.db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	log.Println("✅ Created admin user: admin@example.com (password: admin123)")
	return nil
}

func (m *Migration) seedSiteSettings() error {
	var existing settings.SiteSettings
	if m.db.First(&existing).Error == nil {
		log.Println("⏭️ Site settings already exist")
		return nil
	}

	row := settings.SiteSettings{
		CompanyName:     settings.DefaultCompanyName,
		PrimaryColor:    settings.DefaultPrimaryColor,
		WhatsappMessage: settings.DefaultWhatsappMessage,
		TestMode:        true,
		MaxInstallment:  12,
	}
	if err := m.db.Create(&row).Error; err != nil {
		return err
	}
	log.Println("✅ Created default site settings")
	return nil
}

func (m *Migration) seedSampleProducts() error {
	var count int64
	if err := m.db.Model(&product.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("⏭️ Products already exist, skipping sample data")
		return nil
	}

	price1 := 1299.90
	price2 := 849.50
	samples := []product.Product{
		{
			Title:         "IP Dome Camera",
			Description:   "Indoor 4MP dome camera with night vision",
			Category:      "cameras",
			Features:      []string{"4MP", "Night vision", "PoE"},
			Price:         &price1,
			IsFeatured:    true,
			FeaturedOrder: 1,
		},
		{
			Title:       "8-Port PoE Switch",
			Description: "Rack-mountable PoE switch for camera installations",
			Category:    "network",
			Features:    []string{"8 ports", "120W budget"},
			Price:       &price2,
		},
	}
	for _, p := range samples {
		if err := m.db.Create(&p).Error; err != nil {
			return err
		}
	}

	log.Printf("✅ Created %d sample products", len(samples))
	return nil
}
