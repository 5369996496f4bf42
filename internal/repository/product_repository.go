package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/YYInGitHub/C237-2024-SupermarketApp/internal/model"
)

// ErrProductNotFound is returned by GetByID when no product has the
// given id. Handlers map it to a 404.
var ErrProductNotFound = errors.New("product not found")

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// List returns every product, newest first. There is no filtering or
// pagination; both the inventory and the shopping pages show the full
// catalog.
func (r *ProductRepository) List() ([]model.Product, error) {
	var products []model.Product
	if err := r.db.Order("created_at desc").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepository) GetByID(id uint) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

// Update overwrites the three mutable columns of the product matching
// id. The image column is deliberately left out: it can only be set at
// creation. Updating a missing id is not an error, matching a plain
// UPDATE ... WHERE that touches zero rows.
func (r *ProductRepository) Update(id uint, name string, quantity int, price float64) error {
	return r.db.Model(&model.Product{}).Where("id = ?", id).Updates(map[string]interface{}{
		"product_name": name,
		"quantity":     quantity,
		"price":        price,
	}).Error
}

func (r *ProductRepository) Delete(id uint) error {
	return r.db.Delete(&model.Product{}, id).Error
}
