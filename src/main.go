package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nextglide-backend/src/config"
	"nextglide-backend/src/controllers"
	"nextglide-backend/src/database"
	"nextglide-backend/src/jobs"
	"nextglide-backend/src/logger"
	"nextglide-backend/src/models"
	"nextglide-backend/src/routes"
	"nextglide-backend/src/services/applications"
	"nextglide-backend/src/services/catalog"
	"nextglide-backend/src/services/categories"
	"nextglide-backend/src/services/contacts"
	"nextglide-backend/src/services/inquiries"
	jobsvc "nextglide-backend/src/services/jobs"
	"nextglide-backend/src/services/mailer"
	"nextglide-backend/src/services/notify"
	"nextglide-backend/src/services/socialposts"
	"nextglide-backend/src/services/stats"
	"nextglide-backend/src/services/uploads"
	"nextglide-backend/src/services/webhooks"

	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("load config", zap.Error(err))
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Storage
	db, err := database.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database, log)
	if err != nil {
		log.Fatal("connect mongo", zap.Error(err))
	}
	if err := db.EnsureIndexes(ctx); err != nil {
		log.Fatal("ensure indexes", zap.Error(err))
	}

	rdb, err := database.ConnectRedis(ctx, cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Warn("redis unavailable, running without cache and queue", zap.Error(err))
		rdb = nil
	}
	var (
		queue     *asynq.Client
		inspector *asynq.Inspector
		worker    *asynq.Server
	)
	if rdb != nil {
		queue = database.NewAsynqClient(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
		inspector = database.NewAsynqInspector(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
		worker = database.NewAsynqServer(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
	}

	// Outbound mail
	m, err := mailer.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("build mailer", zap.Error(err))
	}
	var enqueuer notify.Enqueuer
	if queue != nil {
		enqueuer = queue
	}
	notifier := notify.New(m, enqueuer, cfg.Mail.FromEmail, cfg.Mail.FromName, log)

	images, err := uploads.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("build upload store", zap.Error(err))
	}

	// Services
	contactSvc := contacts.NewService(contacts.NewMongoStore(db), notifier, log)
	serviceSvc := catalog.NewService(models.ServiceKind, catalog.NewMongoStore(db, models.ServiceKind),
		listingCache(rdb, models.ServiceKind, cfg, log), log)
	solutionSvc := catalog.NewService(models.SolutionKind, catalog.NewMongoStore(db, models.SolutionKind),
		listingCache(rdb, models.SolutionKind, cfg, log), log)
	serviceInquirySvc := inquiries.NewService(models.ServiceKind, inquiries.NewMongoStore(db, models.ServiceKind), notifier, log)
	solutionInquirySvc := inquiries.NewService(models.SolutionKind, inquiries.NewMongoStore(db, models.SolutionKind), notifier, log)
	jobSvc := jobsvc.NewService(jobsvc.NewMongoStore(db), jobsvc.NewMongoFormStore(db), log)
	applicationSvc := applications.NewService(applications.NewMongoStore(db), jobSvc, notifier, log)
	categorySvc := categories.NewService(categories.NewMongoStore(db))

	var scheduler socialposts.Scheduler
	if queue != nil {
		scheduler = socialposts.NewAsynqScheduler(queue, inspector, log)
	}
	postSvc := socialposts.NewService(socialposts.NewMongoStore(db), images, scheduler, log)

	statsSvc := stats.NewService(map[string]stats.Counter{
		database.CategoryCollection:        categorySvc,
		database.ContactCollection:         contactSvc,
		database.ServiceCollection:         serviceSvc,
		database.SolutionCollection:        solutionSvc,
		database.ServiceInquiryCollection:  serviceInquirySvc,
		database.SolutionInquiryCollection: solutionInquirySvc,
		database.JobCollection:             jobSvc,
		database.ApplicationCollection:     applicationSvc,
		database.SocialPostCollection:      postSvc,
	})

	// HTTP
	opts := routes.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Registerer:     prometheus.DefaultRegisterer,
		Gatherer:       prometheus.DefaultGatherer,
		Log:            log,
	}
	if local, ok := images.(*uploads.LocalStore); ok {
		opts.UploadDir = local.Dir()
	}
	app := routes.NewApp(routes.Handlers{
		System:       controllers.NewSystemController(db, statsSvc, cfg.Server.Env, log),
		Contacts:     controllers.NewContactController(contactSvc, log),
		Services:     controllers.NewCatalogController(serviceSvc, serviceInquirySvc, log),
		Solutions:    controllers.NewCatalogController(solutionSvc, solutionInquirySvc, log),
		Jobs:         controllers.NewJobController(jobSvc, log),
		Applications: controllers.NewApplicationController(applicationSvc, log),
		Categories:   controllers.NewCategoryController(categorySvc, log),
		SocialPosts:  controllers.NewSocialPostController(postSvc, log),
		Webhooks:     controllers.NewWebhookController(webhooks.NewMailEvents(log)),
	}, opts)

	// Background worker
	if worker != nil {
		mux := jobs.NewServeMux(jobs.Handlers{
			SendMail:    notifier.HandleSendMailTask,
			PublishPost: postSvc.HandlePublishTask,
		}, log)
		if err := worker.Start(mux); err != nil {
			log.Fatal("start asynq worker", zap.Error(err))
		}
	}

	go func() {
		log.Info("Server is running", zap.String("port", cfg.Server.Port), zap.String("env", cfg.Server.Env))
		if err := app.Listen(":" + cfg.Server.Port); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("http shutdown", zap.Error(err))
	}
	if worker != nil {
		worker.Shutdown()
	}
	notifier.Wait()
	if queue != nil {
		_ = queue.Close()
	}
	if inspector != nil {
		_ = inspector.Close()
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	if err := db.Close(shutdownCtx); err != nil {
		log.Error("mongo disconnect", zap.Error(err))
	}
}

func listingCache(rdb *redis.Client, kind models.CatalogKind, cfg *config.Config, log *zap.Logger) *catalog.ListingCache {
	if rdb == nil {
		return nil
	}
	return catalog.NewListingCache(rdb, kind.Collection, cfg.Cache.CatalogTTL, log)
}
