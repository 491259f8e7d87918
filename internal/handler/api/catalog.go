package api

import (
	"net/http"

	resdto "storebot/internal/handler/dto/response"
	"storebot/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogQueries queries.CatalogQueries
}

func NewCatalogHandler(catalogQueries queries.CatalogQueries) *CatalogHandler {
	return &CatalogHandler{
		catalogQueries: catalogQueries,
	}
}

// @Summary List items
// @Description List all purchasable items
// @Tags catalog
// @Produce json
// @Success 200 {array} resdto.ItemResponse
// @Router /items [get]
func (h *CatalogHandler) ListItems(c *gin.Context) {
	items, err := h.catalogQueries.ListItems(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.ItemResponse, len(items))
	for i, item := range items {
		response[i] = resdto.FromItemView(item)
	}

	c.JSON(http.StatusOK, response)
}
