package controllers

import (
	"context"
	"sort"
	"time"

	"nextglide-backend/src/models"
	"nextglide-backend/src/services/stats"
	"nextglide-backend/src/utils"

	"github.com/ecodeclub/ekit/slice"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const statusPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>NextGlide Backend Status</title>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; display: flex; justify-content: center; align-items: center; height: 100vh; margin: 0; background-color: #f0f2f5; color: #333; }
.container { text-align: center; padding: 2rem; background: white; border-radius: 8px; box-shadow: 0 4px 6px rgba(0,0,0,0.1); }
h1 { color: #0070f3; margin-bottom: 0.5rem; }
p { color: #666; }
.status { display: inline-block; padding: 0.25rem 0.5rem; background: #e6fffa; color: #047857; border-radius: 4px; font-weight: bold; margin-top: 1rem; }
</style>
</head>
<body>
<div class="container">
<h1>Backend Running</h1>
<p>NextGlide backend is active and listening.</p>
<div class="status">System Operational</div>
</div>
</body>
</html>`

// Readiness is satisfied by *database.Store.
type Readiness interface {
	IsReady(ctx context.Context) bool
}

type SystemController struct {
	db    Readiness
	stats *stats.Service
	env   string
	log   *zap.Logger
	now   func() time.Time
}

func NewSystemController(db Readiness, st *stats.Service, env string, log *zap.Logger) *SystemController {
	return &SystemController{db: db, stats: st, env: env, log: log, now: time.Now}
}

// StatusPage godoc
// @Summary      Service status page
// @Tags         system
// @Produce      html
// @Success      200  {string}  string
// @Router       / [get]
func (h *SystemController) StatusPage(c *fiber.Ctx) error {
	c.Type("html", "utf-8")
	return c.SendString(statusPage)
}

// Health godoc
// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  models.HealthResponse
// @Router       /api/health [get]
func (h *SystemController) Health(c *fiber.Ctx) error {
	return c.JSON(models.HealthResponse{
		Status:         "ok",
		Timestamp:      h.now().UTC(),
		Env:            h.env,
		MongoConnected: h.db != nil && h.db.IsReady(c.UserContext()),
	})
}

// Stats godoc
// @Summary      Document counts per collection
// @Tags         system
// @Produce      json
// @Success      200  {array}   models.CollectionCount
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/stats [get]
func (h *SystemController) Stats(c *fiber.Ctx) error {
	counts, err := h.stats.Counts(c.UserContext())
	if err != nil {
		return utils.RespondError(c, h.log, err)
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	return c.JSON(slice.Map(names, func(_ int, name string) models.CollectionCount {
		return models.CollectionCount{Collection: name, Count: counts[name]}
	}))
}
