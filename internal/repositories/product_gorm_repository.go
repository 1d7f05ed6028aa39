package repositories

import (
	"errors"
	"fmt"

	"farmconnect/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products from the database in insertion order.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Order("position asc, created_at asc, id asc").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with ID %s %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// Create appends a new product to the catalog.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Product{}).Where("id = ?", product.ID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check product %s: %w", product.ID, err)
		}
		if count > 0 {
			return fmt.Errorf("product with ID %s %w", product.ID, ErrDuplicate)
		}
		position, err := nextPosition(tx, &models.Product{})
		if err != nil {
			return err
		}
		product.Position = position
		if err := tx.Create(product).Error; err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}
		return nil
	})
}

// Update updates an existing product in the database.
func (r *GORMProductRepository) Update(product *models.Product) error {
	existing, err := r.GetByID(product.ID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fmt.Errorf("product with ID %s %w for update", product.ID, ErrNotFound)
		}
		return err
	}
	product.Position = existing.Position
	product.CreatedAt = existing.CreatedAt
	if err := r.db.Save(product).Error; err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

// Delete deletes a product by its ID from the database.
func (r *GORMProductRepository) Delete(id string) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s %w for deletion", id, ErrNotFound)
	}
	return nil
}

// nextPosition returns the position after the last row of the model's table.
// nextPosition is not serialised across transactions, so concurrent creates
// can share a position. GetAll breaks such ties by creation time and id.
func nextPosition(tx *gorm.DB, model any) (int, error) {
	var last int
	if err := tx.Model(model).Select("COALESCE(MAX(position), 0)").Scan(&last).Error; err != nil {
		return 0, fmt.Errorf("failed to read catalog position: %w", err)
	}
	return last + 1, nil
}
