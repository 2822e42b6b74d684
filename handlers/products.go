package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ozkkadir/depo-yonetim-sistemi/models"
	"github.com/ozkkadir/depo-yonetim-sistemi/utils"
)

func (api *API) ListProducts(c *gin.Context) {
	views, err := api.Catalog.ListProducts(c.Request.Context(), requesterId(c))
	if err != nil {
		api.fail(c, "ListProducts", nil, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (api *API) CreateProduct(c *gin.Context) {
	var input models.NewProduct
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
		return
	}

	owner, err := api.Users.FindById(c.Request.Context(), requesterId(c))
	if err != nil {
		api.fail(c, "CreateProduct", input.Code, err)
		return
	}

	product, err := api.Registry.CreateProduct(c.Request.Context(), owner, &input)
	if err != nil {
		api.fail(c, "CreateProduct", input.Code, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

type batchImportRequest struct {
	Products []models.ImportRow `json:"products" binding:"required"`
}

func (api *API) BatchImport(c *gin.Context) {
	var req batchImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
		return
	}

	dealerId := requesterId(c)
	count, err := api.Reconciler.Import(c.Request.Context(), dealerId, req.Products)
	if err != nil {
		api.fail(c, "BatchImport", map[string]any{"dealerId": dealerId, "rows": len(req.Products)}, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": count})
}

func (api *API) DeleteProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	if err := api.Registry.DeleteProduct(c.Request.Context(), id); err != nil {
		api.fail(c, "DeleteProduct", id, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
