package main

import (
	activitieshandler "github.com/Andrics/Beyond-Earth/internal/activities/handler"
	activitiesrepo "github.com/Andrics/Beyond-Earth/internal/activities/repository"
	activitiesservice "github.com/Andrics/Beyond-Earth/internal/activities/service"
	adminhandler "github.com/Andrics/Beyond-Earth/internal/admin/handler"
	adminservice "github.com/Andrics/Beyond-Earth/internal/admin/service"
	bookingshandler "github.com/Andrics/Beyond-Earth/internal/bookings/handler"
	bookingsrepo "github.com/Andrics/Beyond-Earth/internal/bookings/repository"
	bookingsservice "github.com/Andrics/Beyond-Earth/internal/bookings/service"
	bookingsvalidator "github.com/Andrics/Beyond-Earth/internal/bookings/validator"
	contacthandler "github.com/Andrics/Beyond-Earth/internal/contact/handler"
	contactrepo "github.com/Andrics/Beyond-Earth/internal/contact/repository"
	contactservice "github.com/Andrics/Beyond-Earth/internal/contact/service"
	contactvalidator "github.com/Andrics/Beyond-Earth/internal/contact/validator"
	contenthandler "github.com/Andrics/Beyond-Earth/internal/content/handler"
	contentservice "github.com/Andrics/Beyond-Earth/internal/content/service"
	landhandler "github.com/Andrics/Beyond-Earth/internal/land/handler"
	landrepo "github.com/Andrics/Beyond-Earth/internal/land/repository"
	landservice "github.com/Andrics/Beyond-Earth/internal/land/service"
	landvalidator "github.com/Andrics/Beyond-Earth/internal/land/validator"
	subscriptionshandler "github.com/Andrics/Beyond-Earth/internal/subscriptions/handler"
	subscriptionsservice "github.com/Andrics/Beyond-Earth/internal/subscriptions/service"
	usersrepo "github.com/Andrics/Beyond-Earth/internal/users/repository"
	usersvalidator "github.com/Andrics/Beyond-Earth/internal/users/validator"
	"github.com/Andrics/Beyond-Earth/pkg/app"
	"github.com/Andrics/Beyond-Earth/pkg/config"
	"github.com/Andrics/Beyond-Earth/pkg/kafka"
	kafkaconfig "github.com/Andrics/Beyond-Earth/pkg/kafka/config"
	kafkamiddleware "github.com/Andrics/Beyond-Earth/pkg/kafka/middleware"

	"github.com/julienschmidt/httprouter"
)

const ServiceName = "beyond-earth-api"

// routeGroup bundles handlers that share a router.
type routeGroup []interface {
	RegisterRoutes(*httprouter.Router)
}

func (g routeGroup) RegisterRoutes(router *httprouter.Router) {
	for _, h := range g {
		h.RegisterRoutes(router)
	}
}

// publicRouteGroup mounts the unauthenticated surface: activity catalog,
// public content and the contact form.
type publicRouteGroup struct {
	activities *activitieshandler.ActivityHandler
	content    *contenthandler.ContentHandler
	contact    *contacthandler.ContactHandler
}

func (g *publicRouteGroup) RegisterRoutes(router *httprouter.Router) {
	g.activities.RegisterRoutes(router)
	g.content.RegisterPublicRoutes(router)
	g.contact.RegisterPublicRoutes(router)
}

func main() {
	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting Beyond Earth API")
	cfg.SetMongo()
	cfg.SetPayment()
	defer cfg.GracefulShutdown()

	producers := initProducers(cfg)
	defer closeProducers(cfg, producers)

	appHandler, publicHandler := initHandlers(cfg, producers)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(appHandler, publicHandler)
	serverApp.Run()
}

type eventProducers struct {
	bookings      *kafka.Producer
	land          *kafka.Producer
	subscriptions *kafka.Producer
}

func initProducers(cfg *config.Config) *eventProducers {
	kafkaCfg := kafkaconfig.Load()

	bookings, err := kafka.NewProducer(kafkaCfg, cfg.BookingEventsTopic, cfg.EventsDLQTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create booking events producer", "error", err)
	}
	land, err := kafka.NewProducer(kafkaCfg, cfg.LandEventsTopic, cfg.EventsDLQTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create land events producer", "error", err)
	}
	subscriptions, err := kafka.NewProducer(kafkaCfg, cfg.SubscriptionEventsTopic, cfg.EventsDLQTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create subscription events producer", "error", err)
	}

	logging := kafkamiddleware.LoggingProducerMiddleware()
	bookings.Use(logging)
	land.Use(logging)
	subscriptions.Use(logging)

	cfg.Log.Info("Kafka producers initialized",
		"booking_topic", cfg.BookingEventsTopic,
		"land_topic", cfg.LandEventsTopic,
		"subscription_topic", cfg.SubscriptionEventsTopic,
	)
	return &eventProducers{
		bookings:      bookings,
		land:          land,
		subscriptions: subscriptions,
	}
}

func closeProducers(cfg *config.Config, producers *eventProducers) {
	for _, p := range []*kafka.Producer{producers.bookings, producers.land, producers.subscriptions} {
		if err := p.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka producer", "error", err)
		}
	}
}

func initHandlers(cfg *config.Config, producers *eventProducers) (routeGroup, *publicRouteGroup) {
	userRepo := usersrepo.NewMongoUserRepository(cfg)
	bookingRepo := bookingsrepo.NewMongoBookingRepository(cfg)
	landRepo := landrepo.NewMongoLandRepository(cfg)
	activityRepo := activitiesrepo.NewMongoActivityRepository(cfg)
	contactRepo := contactrepo.NewMongoContactRepository(cfg)

	bookingService := bookingsservice.NewBookingService(
		bookingRepo,
		bookingsvalidator.NewBookingValidator(cfg.Log),
		cfg,
		producers.bookings,
	)
	landService := landservice.NewLandService(
		landRepo,
		bookingRepo,
		landvalidator.NewLandValidator(cfg.Log),
		cfg,
		producers.land,
	)
	subscriptionService := subscriptionsservice.NewSubscriptionService(userRepo, cfg, producers.subscriptions)
	activityService := activitiesservice.NewActivityService(activityRepo, cfg)
	contentService := contentservice.NewContentService(userRepo, cfg)
	contactService := contactservice.NewContactService(
		contactRepo,
		userRepo,
		contactvalidator.NewContactValidator(cfg.Log),
		cfg,
	)
	adminService := adminservice.NewAdminService(
		userRepo,
		bookingRepo,
		usersvalidator.NewUserValidator(cfg.Log),
		cfg,
	)

	contentHandler := contenthandler.NewContentHandler(contentService, cfg.Log)
	contactHandler := contacthandler.NewContactHandler(contactService, cfg.Log)

	authed := routeGroup{
		bookingshandler.NewBookingHandler(bookingService, cfg.Log),
		landhandler.NewLandHandler(landService, cfg.Log),
		subscriptionshandler.NewSubscriptionHandler(subscriptionService, cfg.Log),
		adminhandler.NewAdminHandler(adminService, cfg.Log),
		contentHandler,
		contactHandler,
	}
	public := &publicRouteGroup{
		activities: activitieshandler.NewActivityHandler(activityService, cfg.Log),
		content:    contentHandler,
		contact:    contactHandler,
	}

	cfg.Log.Info("Handlers initialized", "database", cfg.MongoDatabaseName)
	return authed, public
}
