package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Plain pass-through listings for the reference-data collaborator.

func (api *API) ListBrands(c *gin.Context) {
	brands, err := api.Refs.Brands(c.Request.Context())
	if err != nil {
		api.fail(c, "ListBrands", nil, err)
		return
	}
	c.JSON(http.StatusOK, brands)
}

func (api *API) ListCategories(c *gin.Context) {
	categories, err := api.Refs.Categories(c.Request.Context())
	if err != nil {
		api.fail(c, "ListCategories", nil, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (api *API) ListColors(c *gin.Context) {
	colors, err := api.Refs.Colors(c.Request.Context())
	if err != nil {
		api.fail(c, "ListColors", nil, err)
		return
	}
	c.JSON(http.StatusOK, colors)
}

func (api *API) ListSeries(c *gin.Context) {
	series, err := api.Refs.AllSeries(c.Request.Context())
	if err != nil {
		api.fail(c, "ListSeries", nil, err)
		return
	}
	c.JSON(http.StatusOK, series)
}
