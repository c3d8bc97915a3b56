package api

import (
	"aistrategy/internal/app"
	"aistrategy/internal/domain"
	"aistrategy/internal/logger"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type generateStrategyRequest struct {
	Preferences *domain.InvestmentPreferences `json:"preferences"`
	ApiKey      string                        `json:"apiKey"`
	// Async returns as soon as generation has started; poll progress and
	// the session for the result.
	Async bool `json:"async"`
}

type strategyResponse struct {
	SessionID uuid.UUID `json:"sessionID"`
	Warnings  []string  `json:"warnings,omitempty"`
	View      app.View  `json:"view"`
}

func (m ApiHandler) createStrategy(c *gin.Context) {
	var requestBody generateStrategyRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("invalid request body: %w", err), c, 400)
		return
	}

	session := app.NewSession(m.StrategyService, m.HistoryService, m.MarketService, m.Clock)
	id := m.Sessions.Add(session)

	m.generate(c, id, session, requestBody)
}

// regenerateStrategy resubmits from the questionnaire of an existing
// session, optionally with new preferences.
func (m ApiHandler) regenerateStrategy(c *gin.Context) {
	id, session, ok := m.lookupSession(c)
	if !ok {
		return
	}

	var requestBody generateStrategyRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil && !errors.Is(err, io.EOF) {
		returnErrorJsonCode(fmt.Errorf("invalid request body: %w", err), c, 400)
		return
	}
	if requestBody.Preferences == nil {
		preferences := session.View().Preferences
		requestBody.Preferences = &preferences
	}

	m.generate(c, id, session, requestBody)
}

func (m ApiHandler) generate(c *gin.Context, id uuid.UUID, session *app.Session, requestBody generateStrategyRequest) {
	preferences := domain.DefaultPreferences()
	if requestBody.Preferences != nil {
		preferences = *requestBody.Preferences
	}
	warnings := session.SetPreferences(preferences, requestBody.ApiKey)

	if requestBody.Async {
		// the request context ends with this response
		ctx := context.WithoutCancel(c.Request.Context())
		done, err := session.StartGeneration(ctx)
		if err != nil {
			returnErrorJsonCode(err, c, 409)
			return
		}
		go func() {
			if err := <-done; err != nil {
				logger.FromContext(ctx).Warnw("async strategy generation failed", "sessionID", id, "error", err)
			}
		}()

		c.JSON(202, strategyResponse{
			SessionID: id,
			Warnings:  warnings,
			View:      session.View(),
		})
		return
	}

	err := session.GenerateStrategy(c.Request.Context())
	if errors.Is(err, app.ErrGenerationInFlight) {
		returnErrorJsonCode(err, c, 409)
		return
	}
	if err != nil {
		logger.FromContext(c.Request.Context()).Warnw("strategy generation failed", "sessionID", id, "error", err)
		c.AbortWithStatusJSON(502, gin.H{
			"error":     err.Error(),
			"sessionID": id,
		})
		return
	}

	c.JSON(200, strategyResponse{
		SessionID: id,
		Warnings:  warnings,
		View:      session.View(),
	})
}

func (m ApiHandler) getStrategy(c *gin.Context) {
	id, session, ok := m.lookupSession(c)
	if !ok {
		return
	}

	c.JSON(200, strategyResponse{
		SessionID: id,
		View:      session.View(),
	})
}

func (m ApiHandler) backToQuestionnaire(c *gin.Context) {
	id, session, ok := m.lookupSession(c)
	if !ok {
		return
	}

	session.BackToQuestionnaire()
	c.JSON(200, strategyResponse{
		SessionID: id,
		View:      session.View(),
	})
}

func (m ApiHandler) getProgress(c *gin.Context) {
	_, session, ok := m.lookupSession(c)
	if !ok {
		return
	}

	c.JSON(200, session.Progress())
}

func (m ApiHandler) lookupSession(c *gin.Context) (uuid.UUID, *app.Session, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		returnErrorJsonCode(fmt.Errorf("invalid session id: %w", err), c, 400)
		return uuid.Nil, nil, false
	}

	session, err := m.Sessions.Get(id)
	if err != nil {
		returnErrorJsonCode(err, c, 404)
		return uuid.Nil, nil, false
	}

	return id, session, true
}
