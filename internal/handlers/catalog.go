package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/catalog"
)

func GetProducts(client *catalog.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products"
		defer handlePanic(c, route)

		data, err := client.Products(c.Request.Context())
		if err != nil {
			respondWithError(c, http.StatusBadGateway, route, "catalog unavailable")
			return
		}
		c.Data(http.StatusOK, "application/json", data)
	}
}
