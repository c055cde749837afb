package cmd

import (
	"log/slog"
	"os"

	adapterhttp "orderlink/internal/adapters/in/http"
	"orderlink/internal/adapters/out/geoloc"
	"orderlink/internal/adapters/out/httpfetch"
	"orderlink/internal/adapters/out/sqlitestore"
	"orderlink/internal/core/application/actions"
	"orderlink/internal/core/application/negotiation"
	"orderlink/internal/core/application/syncer"
	"orderlink/internal/core/ports"
	"orderlink/internal/jobs"
	"orderlink/internal/pkg/bus"

	"github.com/labstack/gommon/log"
)

// CompositionRoot wires the adapters into the integration core. Construction
// is eager; a misconfigured dependency fails at startup, not on first use.
type CompositionRoot struct {
	config       Config
	store        *sqlitestore.Store
	synchronizer *syncer.Synchronizer
	server       *adapterhttp.Server
	jobManager   *jobs.JobManager
}

// StaticIdentity is the acting identity of this deployment, taken from
// configuration. One process acts as one user.
type StaticIdentity struct {
	username string
	role     string
}

func (i StaticIdentity) Username() string { return i.username }
func (i StaticIdentity) Role() string     { return i.role }

var _ ports.Identity = StaticIdentity{}

func NewCompositionRoot(config Config) CompositionRoot {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	transport, err := httpfetch.NewTransport(config.BackendBaseURL, config.AuthToken)
	if err != nil {
		log.Fatalf("Failed to create transport: %v", err)
	}

	store, err := sqlitestore.Open(config.StorePath)
	if err != nil {
		log.Fatalf("Failed to open local store: %v", err)
	}

	geolocator, err := geoloc.NewStaticGeolocator(config.DefaultLat, config.DefaultLng)
	if err != nil {
		log.Fatalf("Failed to create geolocator: %v", err)
	}

	identity := StaticIdentity{username: config.CourierUsername, role: config.CourierRole}

	events := bus.New()
	events.Subscribe(bus.TopicOrderSubmitted, func(event bus.Event) {
		logger.Info("Order submitted", "order_id", event.Payload)
	})

	negotiator := negotiation.NewNegotiator(transport, store, logger)
	client := actions.NewClient(negotiator, store, events, logger)
	synchronizer := syncer.NewSynchronizer(client, identity, geolocator, logger)

	return CompositionRoot{
		config:       config,
		store:        store,
		synchronizer: synchronizer,
		server:       adapterhttp.NewServer(client, synchronizer, identity),
		jobManager:   jobs.NewJobManager(synchronizer, config.ReloadIntervalSeconds, logger),
	}
}

// Server returns the HTTP facade.
func (c *CompositionRoot) Server() *adapterhttp.Server {
	return c.server
}

// JobManager returns the background job manager.
func (c *CompositionRoot) JobManager() *jobs.JobManager {
	return c.jobManager
}

// Close releases held resources.
func (c *CompositionRoot) Close() {
	c.jobManager.StopAll()
	if err := c.store.Close(); err != nil {
		log.Warnf("Failed to close local store: %v", err)
	}
}
