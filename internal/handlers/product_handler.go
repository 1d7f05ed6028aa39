package handlers

import (
	"farmconnect/internal/catalog"
	"farmconnect/internal/models"
	"farmconnect/internal/services"
	"farmconnect/internal/viewstate"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the marketplace.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the marketplace routes. auth guards listing creation.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	marketRoutes := router.Group("/marketplace")
	marketRoutes.Get("/products", h.HandleGetProducts)
	marketRoutes.Get("/products/:id", h.HandleGetProductByID)
	marketRoutes.Get("/categories", h.HandleGetCategories)
	marketRoutes.Post("/products", auth, h.HandleCreateProduct)
	marketRoutes.Put("/products/:id", auth, h.HandleUpdateProduct)
	marketRoutes.Delete("/products/:id", auth, h.HandleDeleteProduct)
}

// productView is a product with its display fields.
type productView struct {
	models.Product
	PriceLabel string `json:"price_label"`
	TypeTone   string `json:"type_tone"`
}

func newProductView(p models.Product) productView {
	return productView{
		Product:    p,
		PriceLabel: catalog.PriceLabel(p.Type, p.Price),
		TypeTone:   string(catalog.TypeTone(p.Type)),
	}
}

// marketplaceState builds the marketplace filter from the query string.
func marketplaceState(c *fiber.Ctx) viewstate.Marketplace {
	state := viewstate.NewMarketplace()
	state = viewstate.ReduceMarketplace(state, viewstate.SearchChanged{Term: c.Query("search")})
	state = viewstate.ReduceMarketplace(state, viewstate.TypeSelected{Type: c.Query("type")})
	return viewstate.ReduceMarketplace(state, viewstate.CategorySelected{Category: c.Query("category")})
}

// HandleGetProducts lists the products matching ?search=&type=&category=.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	view, err := h.service.Browse(marketplaceState(c))
	if err != nil {
		return fail(c, "Could not retrieve products", err)
	}

	items := make([]productView, 0, len(view.Items))
	for _, p := range view.Items {
		items = append(items, newProductView(p))
	}
	return c.JSON(viewstate.View[productView]{Items: items, Total: view.Total, Empty: view.Empty})
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.Params("id"))
	if err != nil {
		return fail(c, "Could not retrieve product", err)
	}
	return c.JSON(newProductView(*product))
}

// HandleGetCategories returns the category and type filter options.
func (h *ProductHandler) HandleGetCategories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"categories": h.service.Categories(),
		"types":      h.service.Types(),
	})
}

// HandleCreateProduct lists a new product for the authenticated user.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	product.ID = ""
	product.OwnerID = currentUser(c)
	if product.Seller == "" {
		product.Seller, _ = c.Locals("username").(string)
	}

	if err := h.validate.Struct(product); err != nil {
		return validationFailed(c, err)
	}

	if err := h.service.CreateProduct(&product); err != nil {
		return fail(c, "Could not create product", err)
	}
	return c.Status(fiber.StatusCreated).JSON(newProductView(product))
}

// HandleUpdateProduct replaces one of the caller's listings.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	product.ID = c.Params("id")
	if product.Seller == "" {
		product.Seller, _ = c.Locals("username").(string)
	}

	if err := h.validate.Struct(product); err != nil {
		return validationFailed(c, err)
	}

	if err := h.service.UpdateProduct(currentUser(c), &product); err != nil {
		return fail(c, "Could not update product", err)
	}
	return c.JSON(newProductView(product))
}

// HandleDeleteProduct removes one of the caller's listings.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.DeleteProduct(currentUser(c), id); err != nil {
		return fail(c, "Could not delete product", err)
	}
	return c.Status(fiber.StatusNoContent).Send(nil)
}
