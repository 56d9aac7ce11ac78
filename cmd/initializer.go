package main

import (
	"database/sql"
	"log"
	"os"

	"github.com/redis/go-redis/v9"

	"pawBack/internal/config"
	"pawBack/internal/coordinator"
	"pawBack/internal/handlers"
	"pawBack/internal/repositories"
	"pawBack/internal/services"
	"pawBack/internal/store"
)

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger
	db       *sql.DB

	store       *store.Store
	coordinator *coordinator.Coordinator
	feed        *changeFeedHub

	listingHandler     *handlers.ListingHandler
	requestHandler     *handlers.RequestHandler
	serviceTypeHandler *handlers.ServiceTypeHandler
	selectionHandler   *handlers.SelectionHandler

	jwtSecret []byte
}

func initializeApp(db *sql.DB, cfg config.Config, errorLog, infoLog *log.Logger) *application {
	// Repositories
	listingRepo := repositories.ListingRepository{DB: db}
	requestRepo := repositories.RequestRepository{DB: db}
	serviceTypeRepo := repositories.ServiceTypeRepository{DB: db}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	}
	cachedTypes := repositories.CachedServiceTypeRepository{Repo: &serviceTypeRepo, RDB: rdb}

	// Services
	listingService := &services.ListingService{ListingRepo: &listingRepo}
	requestService := &services.RequestService{RequestRepo: &requestRepo}
	serviceTypeService := &services.ServiceTypeService{ServiceTypeRepo: &cachedTypes}

	// Orchestration
	st := store.New(infoLog)
	coord := coordinator.New(st, listingService, requestService, serviceTypeService, errorLog)
	feed := newChangeFeedHub(st, infoLog)

	// Handlers
	listingHandler := &handlers.ListingHandler{Coordinator: coord, Service: listingService, Store: st}
	requestHandler := &handlers.RequestHandler{Coordinator: coord, Service: requestService, Store: st}
	serviceTypeHandler := &handlers.ServiceTypeHandler{Coordinator: coord, Store: st}
	selectionHandler := &handlers.SelectionHandler{Store: st}

	return &application{
		errorLog:           errorLog,
		infoLog:            infoLog,
		db:                 db,
		store:              st,
		coordinator:        coord,
		feed:               feed,
		listingHandler:     listingHandler,
		requestHandler:     requestHandler,
		serviceTypeHandler: serviceTypeHandler,
		selectionHandler:   selectionHandler,
		jwtSecret:          []byte(os.Getenv("JWT_SECRET")),
	}
}

func openDB(driver, dsn string) (*sql.DB, error) {
	if driver == "" {
		driver = "mysql"
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		log.Printf("Failed to open DB: %v", err)
		return nil, err
	}
	if err = db.Ping(); err != nil {
		log.Printf("Failed to ping DB: %v", err)
		return nil, err
	}
	db.SetMaxIdleConns(35)
	log.Println("Successfully connected to database")
	return db, nil
}
