package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/checkout"
	"storefront/internal/middleware"
)

type placeOrderRequest struct {
	Name          string `json:"name" binding:"required"`
	Mobile        string `json:"mobile" binding:"required"`
	Address       string `json:"address" binding:"required"`
	Area          string `json:"area" binding:"required,oneof=dhaka-inside dhaka-outside"`
	Note          string `json:"note"`
	PaymentMethod string `json:"paymentMethod" binding:"omitempty,oneof=cod bkash"`
}

func PlaceOrder(flow *checkout.Flow) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /checkout"
		defer handlePanic(c, route)

		var req placeOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		result, err := flow.Place(c.Request.Context(), middleware.SessionID(c), checkout.Request{
			Name:          req.Name,
			Mobile:        req.Mobile,
			Address:       req.Address,
			Area:          req.Area,
			Note:          req.Note,
			PaymentMethod: req.PaymentMethod,
			UserAgent:     c.Request.UserAgent(),
		})
		if err != nil {
			var validationErr checkout.ValidationError
			switch {
			case errors.As(err, &validationErr):
				respondWithError(c, http.StatusBadRequest, route, validationErr.Error())
			case errors.Is(err, checkout.ErrEmptyCart):
				respondWithError(c, http.StatusBadRequest, route, "cart is empty")
			default:
				// Submission failure: cart and form state survive, retry is safe.
				c.JSON(http.StatusBadGateway, gin.H{
					"error":     "order placement failed, please try again",
					"retryable": true,
				})
			}
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"orderId":    result.OrderID,
			"status":     result.Status.String(),
			"finalTotal": result.Order.FinalTotal,
			"fraudCheck": result.Assessment,
			"message":    "order created",
		})
	}
}
