package api

import (
	"github.com/gin-gonic/gin"
)

func (m ApiHandler) getMarketIndices(c *gin.Context) {
	c.JSON(200, m.MarketService.GetMarketIndices(c.Request.Context()))
}
