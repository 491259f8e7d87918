package api

import (
	"net/http"
	"strconv"

	resdto "storebot/internal/handler/dto/response"
	"storebot/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type EntitlementHandler struct {
	entitlementQueries queries.EntitlementQueries
}

func NewEntitlementHandler(entitlementQueries queries.EntitlementQueries) *EntitlementHandler {
	return &EntitlementHandler{
		entitlementQueries: entitlementQueries,
	}
}

// @Summary List buyer entitlements
// @Description List entitlements for a buyer, optionally only active ones
// @Tags entitlements
// @Produce json
// @Param id path string true "Buyer ID"
// @Param active query bool false "Only entitlements that have not expired"
// @Success 200 {array} resdto.EntitlementResponse
// @Failure 400 {object} map[string]string
// @Router /buyers/{id}/entitlements [get]
func (h *EntitlementHandler) ListByBuyer(c *gin.Context) {
	buyerID := c.Param("id")
	if buyerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Buyer ID is required",
		})
		return
	}

	activeOnly := false
	if raw := c.Query("active"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid active filter",
			})
			return
		}
		activeOnly = parsed
	}

	views, err := h.entitlementQueries.ListByBuyer(c.Request.Context(), buyerID, activeOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.EntitlementResponse, len(views))
	for i, v := range views {
		response[i] = resdto.FromEntitlementView(v)
	}

	c.JSON(http.StatusOK, response)
}
