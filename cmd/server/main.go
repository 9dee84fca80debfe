package main

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/venuebook/ticketer/internal/config"
	"github.com/venuebook/ticketer/internal/database"
	"github.com/venuebook/ticketer/internal/engine"
	"github.com/venuebook/ticketer/internal/handler"
	"github.com/venuebook/ticketer/internal/middleware"
	"github.com/venuebook/ticketer/internal/model"
	"github.com/venuebook/ticketer/internal/queue"
	"github.com/venuebook/ticketer/internal/repository"
	"github.com/venuebook/ticketer/internal/router"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	repo := repository.New(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatalf("schema: %v", err)
	}
	if cfg.Prefill {
		if err := repo.Prefill(ctx); err != nil {
			log.Fatalf("prefill: %v", err)
		}
	}

	store, err := loadStore(ctx, repo)
	if err != nil {
		log.Fatalf("load: %v", err)
	}
	log.Printf("loaded %d screening(s), %d ticket(s)", store.ScreeningCount(), store.TicketCount())

	runValidation(ctx, cfg, repo, store)

	mu := &sync.Mutex{}
	booking := &handler.BookingHandler{
		Mu:          mu,
		Arrangement: engine.NewArrangement(store, repo),
		Events:      true,
	}
	browse := &handler.BrowseHandler{Mu: mu, Store: store}
	tickets := &handler.TicketsHandler{Mu: mu, Store: store, Storage: repo}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	rlCfg := config.LoadRateLimitConfig()
	if rlCfg.Enabled {
		rdb := config.NewRedisClient()
		e.Use(middleware.NewTokenBucket(rlCfg, rdb))
	}

	router.RegisterHealth(e)
	router.RegisterBrowse(e, browse)
	router.RegisterBooking(e, booking)
	router.RegisterTickets(e, tickets)

	if cfg.QueueConsumer {
		go func() {
			if err := queue.StartBookingConsumer(); err != nil {
				log.Printf("booking-consumer: %v", err)
			}
		}()
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// loadStore bulk-loads the catalogue from the database and builds the
// engine's in-memory aggregate.
func loadStore(ctx context.Context, repo *repository.Store) (*engine.Store, error) {
	movies, err := repo.LoadMovies(ctx)
	if err != nil {
		return nil, err
	}
	venues, err := repo.LoadVenues(ctx)
	if err != nil {
		return nil, err
	}

	movieByTitle := make(map[string]model.Movie, len(movies))
	for _, m := range movies {
		movieByTitle[m.Title] = m
	}
	venueByNumber := make(map[int]model.Venue, len(venues))
	for _, v := range venues {
		venueByNumber[v.Number] = v
	}

	screenings, err := repo.LoadScreenings(ctx, movieByTitle, venueByNumber)
	if err != nil {
		return nil, err
	}
	screeningByID := make(map[int]*model.Screening, len(screenings))
	for _, s := range screenings {
		screeningByID[s.ID] = s
	}

	tickets, err := repo.LoadTickets(ctx, screeningByID)
	if err != nil {
		return nil, err
	}

	return engine.NewStore(movies, venues, screenings, tickets), nil
}

// runValidation executes the startup consistency pass and publishes a
// screening.purged event for every removal so the drops are auditable.
func runValidation(ctx context.Context, cfg config.Config, repo *repository.Store, store *engine.Store) {
	// Snapshot titles and per-screening ticket counts before the run;
	// purged screenings are gone from the store afterwards.
	titles := make(map[int]string)
	counts := make(map[int]int)
	for _, s := range store.Screenings() {
		titles[s.ID] = s.Movie.Title
		counts[s.ID] = len(store.TicketsByScreening(s.ID))
	}

	v := engine.Validator{
		StrictOverlap: cfg.StrictOverlap,
		Purge:         cfg.ValidatePurge,
		Storage:       repo,
	}
	report := v.Run(ctx, store)
	if report.Clean() {
		log.Printf("validate: data set is consistent")
		return
	}
	log.Printf("validate: removed %d screening(s), %d cascaded ticket(s), %d out-of-range ticket(s)",
		len(report.PurgedScreenings), report.CascadedTickets, report.OutOfRangeTickets)

	for _, id := range report.PurgedScreenings {
		ev := queue.ScreeningPurgedEvent{
			ScreeningID:    id,
			MovieTitle:     titles[id],
			Reason:         "schedule overlap",
			TicketsRemoved: counts[id],
			PurgedAt:       time.Now().UTC().Format(time.RFC3339),
		}
		if err := queue.PublishScreeningPurged(ctx, ev); err != nil {
			log.Printf("validate: publish purged event failed: %v", err)
		}
	}
}
