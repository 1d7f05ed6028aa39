package services_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"farmconnect/internal/models"
	"farmconnect/internal/repositories"
	"farmconnect/internal/services"
	"farmconnect/internal/viewstate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProductService_GetAllProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expectedProducts := repositories.SeedProducts()[:2]
	mockRepo.On("GetAll").Return(expectedProducts, nil).Once()

	products, err := service.GetAllProducts()

	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, expectedProducts, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_Browse(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)
	mockRepo.On("GetAll").Return(repositories.SeedProducts(), nil)

	state := viewstate.NewMarketplace()
	view, err := service.Browse(state)
	require.NoError(t, err)
	assert.Len(t, view.Items, 6)
	assert.False(t, view.Empty)

	state = viewstate.ReduceMarketplace(state, viewstate.CategorySelected{Category: "vegetables"})
	view, err = service.Browse(state)
	require.NoError(t, err)
	require.Len(t, view.Items, 2)
	assert.Equal(t, "4", view.Items[0].ID)
	assert.Equal(t, "6", view.Items[1].ID)

	state = viewstate.ReduceMarketplace(state, viewstate.SearchChanged{Term: "tractor"})
	view, err = service.Browse(state)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.True(t, view.Empty)

	mockRepo.ExpectedCalls = nil
	mockRepo.On("GetAll").Return([]models.Product(nil), fmt.Errorf("database error")).Once()
	_, err = service.Browse(state)
	assert.Error(t, err)
}

func TestProductService_GetProductByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expectedProduct := &repositories.SeedProducts()[0]

	// Test successful retrieval
	mockRepo.On("GetByID", "1").Return(expectedProduct, nil).Once()
	product, err := service.GetProductByID("1")
	assert.NoError(t, err)
	assert.Equal(t, expectedProduct, product)

	// Test product not found
	mockRepo.On("GetByID", "99").Return(nil, fmt.Errorf("product with ID 99 %w", repositories.ErrNotFound)).Once()
	product, err = service.GetProductByID("99")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.Nil(t, product)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockMQ := new(MockPublisher)
	service := services.NewProductService(mockRepo, mockMQ)

	newProduct := &models.Product{ID: "7", Title: "Basmati Rice", Price: 90, Type: "sell", Category: "grains"}

	// Test successful creation
	mockRepo.On("Create", newProduct).Return(nil).Once()
	mockMQ.On("Publish", services.Exchange, services.EventListingCreated, mock.MatchedBy(func(body []byte) bool {
		var event map[string]any
		return json.Unmarshal(body, &event) == nil && event["productID"] == "7"
	})).Return(nil).Once()
	err := service.CreateProduct(newProduct)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockMQ.AssertExpectations(t)

	// Test creation failure (e.g., database error)
	mockRepo.On("Create", newProduct).Return(fmt.Errorf("database error")).Once()
	err = service.CreateProduct(newProduct)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
	mockRepo.AssertExpectations(t)
	mockMQ.AssertNumberOfCalls(t, "Publish", 1)
}

func TestProductService_CreateProduct_BrokerFailureIsIgnored(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockMQ := new(MockPublisher)
	service := services.NewProductService(mockRepo, mockMQ)

	p := &models.Product{Title: "Hand Hoe", Price: 150, Type: "sell", Category: "tools"}
	mockRepo.On("Create", p).Return(nil).Once()
	mockMQ.On("Publish", services.Exchange, services.EventListingCreated, mock.Anything).Return(fmt.Errorf("connection closed")).Once()

	assert.NoError(t, service.CreateProduct(p))
	mockMQ.AssertExpectations(t)
}

func TestProductService_CreateProduct_Barter(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	p := &models.Product{Title: "Potatoes for Rice", Price: 500, Type: "barter", Category: "vegetables"}
	mockRepo.On("Create", p).Return(nil).Once()

	require.NoError(t, service.CreateProduct(p))
	assert.Zero(t, p.Price)
}

func TestProductService_CreateProduct_InvalidOptions(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	cases := []models.Product{
		{Title: "x", Type: "all", Category: "grains"},
		{Title: "x", Type: "sell", Category: "all"},
		{Title: "x", Type: "lease", Category: "grains"},
		{Title: "x", Type: "sell", Category: "dairy"},
	}
	for _, p := range cases {
		p := p
		err := service.CreateProduct(&p)
		assert.ErrorIs(t, err, services.ErrInvalidListing, "type %q category %q", p.Type, p.Category)
	}
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestProductService_UpdateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	owned := &models.Product{ID: "7", Title: "Basmati Rice", Type: "sell", Category: "grains", OwnerID: "user-1"}
	updated := &models.Product{ID: "7", Title: "Basmati Rice (new crop)", Type: "sell", Category: "grains", Price: 99}

	// Test successful update
	mockRepo.On("GetByID", "7").Return(owned, nil)
	mockRepo.On("Update", updated).Return(nil).Once()
	err := service.UpdateProduct("user-1", updated)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", updated.OwnerID)
	mockRepo.AssertExpectations(t)

	// Test update by another user
	err = service.UpdateProduct("user-2", &models.Product{ID: "7", Type: "sell", Category: "grains"})
	assert.ErrorIs(t, err, services.ErrNotOwner)

	// Test seeded listings cannot be changed
	mockRepo.On("GetByID", "1").Return(&repositories.SeedProducts()[0], nil)
	err = service.UpdateProduct("", &models.Product{ID: "1", Type: "sell", Category: "grains"})
	assert.ErrorIs(t, err, services.ErrNotOwner)

	// Test product not found
	mockRepo.On("GetByID", "99").Return(nil, fmt.Errorf("product with ID 99 %w", repositories.ErrNotFound)).Once()
	err = service.UpdateProduct("user-1", &models.Product{ID: "99"})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestProductService_DeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	mockRepo.On("GetByID", "7").Return(&models.Product{ID: "7", OwnerID: "user-1"}, nil)

	// Test successful deletion
	mockRepo.On("Delete", "7").Return(nil).Once()
	assert.NoError(t, service.DeleteProduct("user-1", "7"))
	mockRepo.AssertExpectations(t)

	// Test deletion by another user
	assert.ErrorIs(t, service.DeleteProduct("user-2", "7"), services.ErrNotOwner)
	mockRepo.AssertNumberOfCalls(t, "Delete", 1)
}
