package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/acruxa/storefront/internal/core/service"
	"github.com/acruxa/storefront/internal/port"
)

type CatalogHandler struct {
	catalog *service.CatalogService
}

func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListProducts handles GET /api/products
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	q := port.ProductQuery{
		CategorySlug: c.Query("category"),
		Search:       c.Query("q"),
		Page:         queryInt(c, "page", 1),
		PerPage:      queryInt(c, "per_page", 20),
	}

	products, total, err := h.catalog.ListProducts(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}

	items := []productResponse{}
	for _, p := range products {
		items = append(items, toProductResponse(p))
	}
	c.JSON(http.StatusOK, pagedResponse{
		Items:   items,
		Total:   total,
		Page:    q.Page,
		PerPage: q.PerPage,
	})
}

// FeaturedProducts handles GET /api/products/featured
func (h *CatalogHandler) FeaturedProducts(c *gin.Context) {
	products, err := h.catalog.FeaturedProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	items := []productResponse{}
	for _, p := range products {
		items = append(items, toProductResponse(p))
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// GetProduct handles GET /api/products/:slug
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, err := h.catalog.GetProductBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(*product))
}

// ListCategories handles GET /api/categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	items := []categoryResponse{}
	for _, cat := range categories {
		items = append(items, categoryResponse{ID: cat.ID, Name: cat.Name, Slug: cat.Slug})
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func queryInt(c *gin.Context, key string, defaultValue int) int {
	raw := c.Query(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return value
}
