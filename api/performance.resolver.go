package api

import (
	"aistrategy/internal/app"
	"aistrategy/internal/domain"
	"bytes"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
)

type selectWindowRequest struct {
	Months int `json:"months" binding:"required"`
}

type selectWindowResponse struct {
	// Applied is false when a later window selection superseded this one.
	Applied bool     `json:"applied"`
	View    app.View `json:"view"`
}

func (m ApiHandler) selectWindow(c *gin.Context) {
	_, session, ok := m.lookupSession(c)
	if !ok {
		return
	}

	var requestBody selectWindowRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("invalid request body: %w", err), c, 400)
		return
	}

	applied, err := session.SelectWindow(c.Request.Context(), requestBody.Months)
	if errors.Is(err, app.ErrNoStrategy) {
		returnErrorJsonCode(err, c, 409)
		return
	}
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, selectWindowResponse{
		Applied: applied,
		View:    session.View(),
	})
}

type setDisplayModeRequest struct {
	Mode string `json:"mode" binding:"required"`
}

func (m ApiHandler) setDisplayMode(c *gin.Context) {
	id, session, ok := m.lookupSession(c)
	if !ok {
		return
	}

	var requestBody setDisplayModeRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("invalid request body: %w", err), c, 400)
		return
	}
	mode, err := domain.ParseDisplayMode(requestBody.Mode)
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	session.SetDisplayMode(mode)
	c.JSON(200, strategyResponse{
		SessionID: id,
		View:      session.View(),
	})
}

func (m ApiHandler) getChart(c *gin.Context) {
	_, session, ok := m.lookupSession(c)
	if !ok {
		return
	}

	view := session.View()
	if view.Strategy == nil {
		returnErrorJsonCode(app.ErrNoStrategy, c, 409)
		return
	}

	png, err := m.ChartService.RenderPerformanceChart(view.Strategy.Series, view.Strategy.Recommendations, view.Strategy.Mode)
	if err != nil {
		returnErrorJsonCode(err, c, 422)
		return
	}

	c.Data(200, "image/png", png)
}

func (m ApiHandler) exportSeries(c *gin.Context) {
	_, session, ok := m.lookupSession(c)
	if !ok {
		return
	}

	view := session.View()
	if view.Strategy == nil {
		returnErrorJsonCode(app.ErrNoStrategy, c, 409)
		return
	}

	buf := &bytes.Buffer{}
	if err := m.ExportService.WriteSeriesCSV(buf, view.Strategy.Series); err != nil {
		returnErrorJson(err, c)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="performance-%dm-%s.csv"`, view.Strategy.WindowMonths, view.Strategy.Mode))
	c.Data(200, "text/csv", buf.Bytes())
}
