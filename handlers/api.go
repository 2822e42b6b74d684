package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ozkkadir/depo-yonetim-sistemi/config"
	"github.com/ozkkadir/depo-yonetim-sistemi/models"
	"github.com/ozkkadir/depo-yonetim-sistemi/utils"
	"github.com/sirupsen/logrus"
)

// API wires the HTTP surface to the catalog components. Handlers stay
// thin: bind, resolve the requester, call the component, map the error
// taxonomy onto a status code.
type API struct {
	Users        *models.UserStore
	Refs         *models.ReferenceStore
	Registry     *models.ProductRegistry
	Entitlements *models.EntitlementIndex
	Ledger       *models.InventoryLedger
	Catalog      *models.CatalogAggregator
	Reconciler   *models.BatchReconciler
	Logger       *logrus.Logger
}

func (api *API) RegisterRoutes(r *gin.Engine) {
	r.POST("/api/login", api.Login)

	r.GET("/api/products", api.ListProducts)
	r.POST("/api/products", api.CreateProduct)
	r.POST("/api/products/batch", api.BatchImport)
	r.DELETE("/api/products/:id", api.DeleteProduct)

	r.PUT("/api/inventory/:id", api.AdjustInventory)
	r.POST("/api/inventory/receive", api.ReceiveStock)

	r.GET("/api/brands", api.ListBrands)
	r.GET("/api/categories", api.ListCategories)
	r.GET("/api/colors", api.ListColors)
	r.GET("/api/series", api.ListSeries)
}

// requesterId resolves the calling user: token claims win, the legacy
// userId query parameter is kept for old clients.
func requesterId(c *gin.Context) int {
	if id, ok := utils.GetUserIdFromContext(c.Request.Context()); ok && id > 0 {
		return id
	}
	if raw := c.Query("userId"); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil {
			return id
		}
	}
	return 0
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, utils.ErrorRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, utils.ErrorInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, utils.ErrorDuplicateRecord):
		return http.StatusConflict
	case errors.Is(err, utils.ErrorStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (api *API) fail(c *gin.Context, funcName string, data any, err error) {
	cid, _ := utils.GetCorrelationIdFromContext(c.Request.Context())
	config.LogError(api.Logger, "handlers", funcName, cid, data, err)
	c.JSON(statusFromError(err), gin.H{"error": err.Error()})
}
