package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/cart"
	"storefront/internal/middleware"
	"storefront/internal/models"
)

/* =========================
   REQUEST DTOs
========================= */

type addItemRequest struct {
	Product  models.Product `json:"product" binding:"required"`
	Quantity int            `json:"quantity" binding:"required,min=1"`
}

type updateQuantityRequest struct {
	Direction string `json:"direction" binding:"required,oneof=increase decrease"`
}

type buyNowRequest struct {
	Product  models.Product `json:"product" binding:"required"`
	Quantity int            `json:"quantity" binding:"required,min=1"`
}

/* =========================
   CART
========================= */

func GetCart(manager *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /cart"
		defer handlePanic(c, route)

		store := manager.Session(c.Request.Context(), middleware.SessionID(c))
		respondCart(c, store)
	}
}

func AddCartItem(manager *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /cart/items"
		defer handlePanic(c, route)

		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		store := manager.Session(c.Request.Context(), middleware.SessionID(c))
		store.Add(c.Request.Context(), req.Product, req.Quantity)
		respondCart(c, store)
	}
}

func UpdateCartItem(manager *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /cart/items/:cartId"
		defer handlePanic(c, route)

		var req updateQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		store := manager.Session(c.Request.Context(), middleware.SessionID(c))
		_, err := store.UpdateQuantity(c.Request.Context(), c.Param("cartId"), cart.Direction(req.Direction))
		if errors.Is(err, cart.ErrItemNotFound) {
			respondWithError(c, http.StatusNotFound, route, "item not in cart")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}
		respondCart(c, store)
	}
}

func RemoveCartItem(manager *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /cart/items/:cartId"
		defer handlePanic(c, route)

		store := manager.Session(c.Request.Context(), middleware.SessionID(c))
		store.Remove(c.Request.Context(), c.Param("cartId"))
		respondCart(c, store)
	}
}

func ClearCart(manager *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /cart"
		defer handlePanic(c, route)

		store := manager.Session(c.Request.Context(), middleware.SessionID(c))
		store.Clear(c.Request.Context())
		respondCart(c, store)
	}
}

// BuyNow replaces the cart with a single item and stages the checkout
// snapshot in one call, so the UI can navigate straight to checkout.
func BuyNow(manager *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /cart/buy-now"
		defer handlePanic(c, route)

		var req buyNowRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		store := manager.Session(c.Request.Context(), middleware.SessionID(c))
		snapshot, err := store.BuyNow(c.Request.Context(), req.Product, req.Quantity)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "could not stage checkout")
			return
		}

		c.JSON(http.StatusOK, gin.H{"checkout": snapshot})
	}
}

// StageCheckout copies the current cart into the checkout handoff slot.
// Cart edits after this point do not affect the staged snapshot.
func StageCheckout(manager *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /cart/checkout"
		defer handlePanic(c, route)

		store := manager.Session(c.Request.Context(), middleware.SessionID(c))
		snapshot, err := store.StageCheckout(c.Request.Context())
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "could not stage checkout")
			return
		}

		c.JSON(http.StatusOK, gin.H{"checkout": snapshot})
	}
}

func respondCart(c *gin.Context, store *cart.Store) {
	items := store.Items()
	response := gin.H{
		"items":     items,
		"total":     store.Total(),
		"itemCount": len(items),
	}
	if store.Err() != nil {
		// Soft indicator only: the in-memory cart is still valid.
		response["storageDegraded"] = true
	}
	c.JSON(http.StatusOK, response)
}
