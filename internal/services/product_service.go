package services

import (
	"fmt"

	"farmconnect/internal/catalog"
	"farmconnect/internal/models"
	"farmconnect/internal/repositories"
	"farmconnect/internal/viewstate"
)

// Option is a selectable filter value with its display label.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ProductCategories lists the marketplace categories, "all" first.
var ProductCategories = []Option{
	{Value: catalog.All, Label: "All Categories"},
	{Value: "grains", Label: "Grains"},
	{Value: "vegetables", Label: "Vegetables"},
	{Value: "fruits", Label: "Fruits"},
	{Value: "seeds", Label: "Seeds"},
	{Value: "fertilizer", Label: "Fertilizer"},
	{Value: "machinery", Label: "Machinery"},
	{Value: "tools", Label: "Tools"},
}

// ProductTypes lists the marketplace listing types, "all" first.
var ProductTypes = []Option{
	{Value: catalog.All, Label: "All Types"},
	{Value: models.ProductTypeSell, Label: "Selling"},
	{Value: models.ProductTypeBuy, Label: "Buying"},
	{Value: models.ProductTypeBarter, Label: "Barter"},
}

// ProductService handles business logic related to marketplace listings.
type ProductService struct {
	repo repositories.ProductRepository
	mq   Publisher
}

// NewProductService creates a new ProductService. mq may be nil.
func NewProductService(repo repositories.ProductRepository, mq Publisher) *ProductService {
	return &ProductService{
		repo: repo,
		mq:   mq,
	}
}

// GetAllProducts retrieves all products in catalog order.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// Browse returns the products visible in the given marketplace state.
func (s *ProductService) Browse(state viewstate.Marketplace) (viewstate.View[models.Product], error) {
	products, err := s.repo.GetAll()
	if err != nil {
		return viewstate.View[models.Product]{}, err
	}
	return state.Visible(products), nil
}

// Categories returns the category filter options.
func (s *ProductService) Categories() []Option { return ProductCategories }

// Types returns the listing type filter options.
func (s *ProductService) Types() []Option { return ProductTypes }

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

func checkListing(product *models.Product) error {
	if !isOption(ProductTypes, product.Type) || !isOption(ProductCategories, product.Category) {
		return fmt.Errorf("%w: type %q, category %q", ErrInvalidListing, product.Type, product.Category)
	}
	if product.Type == models.ProductTypeBarter {
		product.Price = 0
	}
	return nil
}

// CreateProduct lists a new product and announces it.
func (s *ProductService) CreateProduct(product *models.Product) error {
	if err := checkListing(product); err != nil {
		return err
	}
	if err := s.repo.Create(product); err != nil {
		return err
	}

	publish(s.mq, EventListingCreated, map[string]any{
		"productID": product.ID,
		"title":     product.Title,
		"type":      product.Type,
		"category":  product.Category,
		"price":     product.Price,
	})
	return nil
}

// owned returns the product with id if userID listed it. Seeded listings have
// no owner and cannot be changed.
func (s *ProductService) owned(userID, id string) (*models.Product, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing.OwnerID == "" || existing.OwnerID != userID {
		return nil, fmt.Errorf("%w: %s", ErrNotOwner, id)
	}
	return existing, nil
}

// UpdateProduct replaces a listing owned by userID.
func (s *ProductService) UpdateProduct(userID string, product *models.Product) error {
	existing, err := s.owned(userID, product.ID)
	if err != nil {
		return err
	}
	if err := checkListing(product); err != nil {
		return err
	}
	product.OwnerID = existing.OwnerID
	return s.repo.Update(product)
}

// DeleteProduct removes a listing owned by userID.
func (s *ProductService) DeleteProduct(userID, id string) error {
	if _, err := s.owned(userID, id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

// isOption reports whether v is one of the concrete (non-"all") options.
func isOption(opts []Option, v string) bool {
	if v == catalog.All {
		return false
	}
	for _, o := range opts {
		if o.Value == v {
			return true
		}
	}
	return false
}
