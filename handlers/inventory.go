package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ozkkadir/depo-yonetim-sistemi/utils"
	"github.com/shopspring/decimal"
)

type adjustQuantityRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

func (api *API) AdjustInventory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid inventory id"})
		return
	}
	var req adjustQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
		return
	}
	if err := api.Ledger.AdjustQuantity(c.Request.Context(), requesterId(c), id, req.Quantity); err != nil {
		api.fail(c, "AdjustInventory", id, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type receiveStockRequest struct {
	ProductId int             `json:"product_id" binding:"required"`
	ColorId   int             `json:"color_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

func (api *API) ReceiveStock(c *gin.Context) {
	var req receiveStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
		return
	}

	record, err := api.Ledger.ReceiveStock(c.Request.Context(), requesterId(c), req.ProductId, req.ColorId, req.Quantity, req.UnitCost)
	if err != nil {
		api.fail(c, "ReceiveStock", req, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"quantity":   record.Quantity,
		"cost_price": record.CostPrice,
	})
}
