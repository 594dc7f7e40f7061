package controller

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/dpaiva/lojinha-backend/internal/app/service"
	"github.com/dpaiva/lojinha-backend/internal/catalog"
	"github.com/dpaiva/lojinha-backend/internal/errors"
	"github.com/dpaiva/lojinha-backend/internal/middleware"
)

type CatalogController struct {
	catalogService service.CatalogService
	reportService  service.ReportService
}

func NewCatalogController(catalogService service.CatalogService, reportService service.ReportService) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
		reportService:  reportService,
	}
}

// ListProducts returns the filtered, sorted catalog
// GET /api/v1/products
//
// The query string is the shareable representation of the view: it is
// decoded into a filter and sort key, and the canonical re-encoding is
// echoed back so the client can mirror it into the address bar.
func (ctrl *CatalogController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter, sortKey := catalog.ParseQuery(c.Request.URL.Query())
	products := ctrl.catalogService.List(filter, sortKey)

	log.Info("Products listed", map[string]interface{}{
		"count":    len(products),
		"sort_key": string(sortKey),
	})

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
		"query":    catalog.EncodeQuery(filter, sortKey),
	})
}

// GetProductFilters returns metadata for the filter panel
// GET /api/v1/products/filters
func (ctrl *CatalogController) GetProductFilters(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	meta := ctrl.catalogService.FilterMetadata()

	log.Debug("Filter metadata fetched", map[string]interface{}{
		"brand_count": len(meta.Brands),
	})

	c.JSON(http.StatusOK, gin.H{
		"filters": meta,
	})
}

// GetProductByID returns a product by ID
// GET /api/v1/products/:id
func (ctrl *CatalogController) GetProductByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		log.Warn("Invalid product ID format", map[string]interface{}{
			"product_id": idStr,
			"error":      err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidID, "Invalid product ID")
		return
	}

	product, err := ctrl.catalogService.GetProduct(uint(id))
	if err != nil {
		if stderrors.Is(err, service.ErrProductNotFound) {
			errors.NotFound(c, errors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// ExportCatalog streams the catalog as an xlsx workbook
// GET /api/v1/products/export
func (ctrl *CatalogController) ExportCatalog(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	workbook, err := ctrl.reportService.CatalogWorkbook()
	if err != nil {
		log.Error("Failed to build catalog workbook", err, nil)
		errors.RespondWithError(c, http.StatusInternalServerError, errors.ExportFailed, "Failed to export catalog")
		return
	}
	defer workbook.Close()

	c.Header("Content-Disposition", `attachment; filename="catalogo.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := workbook.Write(c.Writer); err != nil {
		log.Error("Failed to stream catalog workbook", err, nil)
		c.Error(fmt.Errorf("workbook write: %w", err))
		return
	}

	log.Info("Catalog exported", nil)
}
