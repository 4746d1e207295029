package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/storage"
)

const themeKey = "theme:settings"

// Theme settings are an opaque token document owned by the storefront UI;
// the backend only stores and returns them.

func GetTheme(kv storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /theme"
		defer handlePanic(c, route)

		data, err := kv.Get(c.Request.Context(), themeKey)
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{})
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "theme unavailable")
			return
		}
		c.Data(http.StatusOK, "application/json", data)
	}
}

func SaveTheme(kv storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /theme"
		defer handlePanic(c, route)

		var settings map[string]interface{}
		if err := c.ShouldBindJSON(&settings); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		data, err := json.Marshal(settings)
		if err == nil {
			err = kv.Put(c.Request.Context(), themeKey, data)
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "could not save theme")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "theme saved"})
	}
}
