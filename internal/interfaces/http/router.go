// Package http exposes a small status API next to the gateway connection:
// a health probe and aggregate counters for dashboards.
package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"warden/internal/domain/moderation"
	"warden/internal/domain/ticket"
	"warden/internal/interfaces/http/middleware"
	"warden/internal/shared/logger"
)

// Router wires the status endpoints onto a gin engine.
type Router struct {
	engine     *gin.Engine
	ticketRepo ticket.Repository
	caseRepo   moderation.CaseRepository
	logger     logger.Interface
	started    time.Time
}

func NewRouter(ticketRepo ticket.Repository, caseRepo moderation.CaseRepository, log logger.Interface) *Router {
	return &Router{
		engine:     gin.New(),
		ticketRepo: ticketRepo,
		caseRepo:   caseRepo,
		logger:     log,
		started:    time.Now(),
	}
}

func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.Recovery(r.logger))

	r.engine.GET("/health", r.health)
	r.engine.GET("/stats", r.stats)
}

func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

func (r *Router) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(r.started).Round(time.Second).String(),
	})
}

func (r *Router) stats(c *gin.Context) {
	ctx := c.Request.Context()

	total, err := r.ticketRepo.Count(ctx)
	if err != nil {
		r.logger.Errorw("failed to count tickets", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stats unavailable"})
		return
	}
	open, err := r.ticketRepo.CountByStatus(ctx, ticket.StatusOpen)
	if err != nil {
		r.logger.Errorw("failed to count open tickets", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stats unavailable"})
		return
	}
	closed, err := r.ticketRepo.CountByStatus(ctx, ticket.StatusClosed)
	if err != nil {
		r.logger.Errorw("failed to count closed tickets", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stats unavailable"})
		return
	}

	cases, err := r.caseRepo.Count(ctx)
	if err != nil {
		r.logger.Errorw("failed to count cases", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stats unavailable"})
		return
	}

	byAction := gin.H{}
	for _, action := range []moderation.Action{
		moderation.ActionWarn,
		moderation.ActionMute,
		moderation.ActionKick,
		moderation.ActionBan,
	} {
		n, err := r.caseRepo.CountByAction(ctx, action)
		if err != nil {
			r.logger.Errorw("failed to count cases by action", "error", err, "action", action)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "stats unavailable"})
			return
		}
		byAction[string(action)] = n
	}

	c.JSON(http.StatusOK, gin.H{
		"tickets": gin.H{
			"total":  total,
			"open":   open,
			"closed": closed,
		},
		"cases": gin.H{
			"total":     cases,
			"by_action": byAction,
		},
	})
}
