package api

import (
	"aistrategy/internal/logger"
	"aistrategy/internal/service"
	"bytes"
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

type ApiHandler struct {
	StrategyService service.StrategyService
	HistoryService  service.HistoryService
	MarketService   service.MarketService
	ChartService    service.ChartService
	ExportService   service.ExportService
	Clock           clockwork.Clock
	Sessions        *SessionStore
}

func (m ApiHandler) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.Use(m.logRequestMiddlware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to aistrategy"})
	})
	router.GET("/market-indices", m.getMarketIndices)

	router.POST("/strategy", m.createStrategy)
	router.GET("/strategy/:id", m.getStrategy)
	router.POST("/strategy/:id/generate", m.regenerateStrategy)
	router.POST("/strategy/:id/window", m.selectWindow)
	router.POST("/strategy/:id/mode", m.setDisplayMode)
	router.GET("/strategy/:id/chart.png", m.getChart)
	router.GET("/strategy/:id/export.csv", m.exportSeries)
	router.GET("/strategy/:id/progress", m.getProgress)
	router.DELETE("/strategy/:id", m.backToQuestionnaire)

	return router
}

func (m ApiHandler) StartApi(port int) error {
	return m.Router().Run(fmt.Sprintf(":%d", port))
}

func returnErrorJson(err error, c *gin.Context) {
	returnErrorJsonCode(err, c, 500)
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	logger.FromContext(c.Request.Context()).Warnw("request failed", "status", code, "error", err)
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

type responseBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (r responseBodyWriter) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (m ApiHandler) logRequestMiddlware(ctx *gin.Context) {
	w := &responseBodyWriter{body: &bytes.Buffer{}, ResponseWriter: ctx.Writer}
	ctx.Writer = w

	requestID := uuid.New()
	log := zap.S().With(
		"requestID", requestID.String(),
		"method", ctx.Request.Method,
		"route", ctx.FullPath(),
	)
	ctx.Request = ctx.Request.WithContext(logger.WithContext(ctx.Request.Context(), log))

	start := time.Now().UTC()
	ctx.Next()

	fields := []interface{}{
		"status", ctx.Writer.Status(),
		"durationMs", time.Since(start).Milliseconds(),
		"ip", ctx.ClientIP(),
	}
	if ctx.Writer.Status() >= 400 && w.body.Len() > 0 {
		fields = append(fields, "responseBody", w.body.String())
	}
	log.Infow("handled request", fields...)
}
