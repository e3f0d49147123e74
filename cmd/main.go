package main

import (
	"context"
	"net/http"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/scalixity-dev/Pms-backend-sub001/internal/app"
	"github.com/scalixity-dev/Pms-backend-sub001/internal/config"
	"github.com/scalixity-dev/Pms-backend-sub001/internal/controllers"
	"github.com/scalixity-dev/Pms-backend-sub001/internal/middleware"
	"github.com/scalixity-dev/Pms-backend-sub001/internal/repositories"
	"github.com/scalixity-dev/Pms-backend-sub001/internal/routes"
	"github.com/scalixity-dev/Pms-backend-sub001/internal/services"
	"github.com/scalixity-dev/Pms-backend-sub001/internal/storage"
	"github.com/scalixity-dev/Pms-backend-sub001/internal/utils"
)

func main() {
	utils.InitLogger("pms-backend")
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize service:", err)
	}
	defer application.Close()

	pmRepo := repositories.NewPropertyManagerRepository(application.DB)
	propRepo := repositories.NewPropertyRepository(application.DB)
	unitRepo := repositories.NewUnitRepository(application.DB)
	leasingRepo := repositories.NewLeasingRepository(application.DB)
	listingRepo := repositories.NewListingRepository(application.DB)
	amenityRepo := repositories.NewAmenityRepository(application.DB)
	taskRepo := repositories.NewTaskRepository(application.DB)
	attachRepo := repositories.NewAttachmentRepository(application.DB)
	photoRepo := repositories.NewPropertyPhotoRepository(application.DB)

	store, err := storage.NewClient(storage.Config{
		Region:          cfg.S3Region,
		Bucket:          cfg.S3Bucket,
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
		Endpoint:        cfg.S3Endpoint,
		PublicURLBase:   cfg.S3PublicURLBase,
		UsePathStyle:    cfg.S3UsePathStyle,
	})
	if err != nil {
		utils.Logger.Fatal("Failed to initialize object storage:", err)
	}

	listingService := services.NewListingService(propRepo, unitRepo, leasingRepo, listingRepo, amenityRepo)
	propertyService := services.NewPropertyService(propRepo, unitRepo, leasingRepo, amenityRepo, pmRepo)
	taskService := services.NewTaskService(taskRepo, propRepo)
	uploadService := services.NewUploadService(store, propRepo, attachRepo, photoRepo)

	uploadService.InitAtStartup(context.Background())

	listingsController := controllers.NewListingsController(listingService)
	propertiesController := controllers.NewPropertiesController(propertyService)
	tasksController := controllers.NewTasksController(taskService)
	filesController := controllers.NewFilesController(uploadService)
	healthController := controllers.NewHealthController(application)

	router := mux.NewRouter()

	// Public
	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)

	secured := router.NewRoute().Subrouter()
	secured.Use(middleware.AuthMiddleware(cfg.RSAPublicKey))

	secured.HandleFunc(routes.Listings, listingsController.CreateListingHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.Listings, listingsController.ListListingsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.Listing, listingsController.GetListingHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.Listing, listingsController.UpdateListingHandler).Methods(http.MethodPatch)
	secured.HandleFunc(routes.Listing, listingsController.DeleteListingHandler).Methods(http.MethodDelete)

	secured.HandleFunc(routes.Properties, propertiesController.CreatePropertyHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.Properties, propertiesController.ListPropertiesHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.Property, propertiesController.GetPropertyHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.PropertyLeasing, propertiesController.UpsertLeasingHandler).Methods(http.MethodPut)

	secured.HandleFunc(routes.Tasks, tasksController.CreateTaskHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.Tasks, tasksController.ListTasksHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.Task, tasksController.GetTaskHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.Task, tasksController.UpdateTaskHandler).Methods(http.MethodPatch)
	secured.HandleFunc(routes.Task, tasksController.DeleteTaskHandler).Methods(http.MethodDelete)

	secured.HandleFunc(routes.FilesUpload, filesController.UploadFileHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.FilesDelete, filesController.DeleteFileHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.FilesPresign, filesController.PresignFileHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.FilesConnectionTest, filesController.ConnectionTestHandler).Methods(http.MethodGet)

	allowedOrigins := []string{"*"}
	if cfg.AppUrl != "" {
		allowedOrigins = []string{cfg.AppUrl}
	}

	co := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("Service failed to start:", err)
	}
}
