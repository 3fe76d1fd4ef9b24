package routes

import (
	"errors"
	"strings"

	_ "nextglide-backend/docs"
	"nextglide-backend/src/controllers"
	"nextglide-backend/src/middleware"
	"nextglide-backend/src/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const bodyLimit = 10 << 20

// Handlers holds one controller per route group.
type Handlers struct {
	System       *controllers.SystemController
	Contacts     *controllers.ContactController
	Services     *controllers.CatalogController
	Solutions    *controllers.CatalogController
	Jobs         *controllers.JobController
	Applications *controllers.ApplicationController
	Categories   *controllers.CategoryController
	SocialPosts  *controllers.SocialPostController
	Webhooks     *controllers.WebhookController
}

type Options struct {
	AllowedOrigins string
	// UploadDir is served at /uploads when uploads are kept on local disk.
	UploadDir  string
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
	Log        *zap.Logger
}

// NewApp builds the fiber app with its middleware chain and every route.
func NewApp(h Handlers, opts Options) *fiber.App {
	log := opts.Log
	app := fiber.New(fiber.Config{
		BodyLimit: bodyLimit,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return utils.HandleError(c, fe.Code, fe.Message)
			}
			return utils.RespondError(c, log, err)
		},
	})

	app.Use(recover.New())
	app.Use(corsHandler(opts.AllowedOrigins))
	app.Use(middleware.RequestLogger(log))
	if opts.Registerer != nil {
		app.Use(middleware.NewMetricsBuilder(opts.Registerer).Build())
	}
	if opts.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	app.Get("/swagger/*", swagger.HandlerDefault)
	if opts.UploadDir != "" {
		app.Static("/uploads", opts.UploadDir)
	}

	InitRoutes(app, h)
	return app
}

func InitRoutes(app *fiber.App, h Handlers) {
	app.Get("/", h.System.StatusPage)

	api := app.Group("/api")
	api.Get("/health", h.System.Health)
	api.Get("/stats", h.System.Stats)

	ContactRoutes(api, h.Contacts)
	CatalogRoutes(api, "/services", h.Services)
	CatalogRoutes(api, "/solutions", h.Solutions)
	JobRoutes(api, h.Jobs)
	ApplicationRoutes(api, h.Applications)
	CategoryRoutes(api, h.Categories)
	SocialPostRoutes(api, h.SocialPosts)

	app.Post("/webhooks/mailjet", h.Webhooks.MailEvents)
}

// corsHandler allows every origin when origins is "*". Credentials are
// only allowed for an explicit origin list.
func corsHandler(origins string) fiber.Handler {
	origins = strings.TrimSpace(origins)
	if origins == "" || origins == "*" {
		return cors.New(cors.Config{
			AllowOrigins:     "*",
			AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
			AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
			AllowCredentials: false,
		})
	}
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	})
}
