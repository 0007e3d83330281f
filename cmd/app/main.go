package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"voyago/cmd/fx/account_fx"
	"voyago/cmd/fx/completion_fx"
	"voyago/cmd/fx/db_fx"
	"voyago/cmd/fx/itinerary_fx"
	"voyago/internal/api/controllers"
	"voyago/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	app := fx.New(
		db_fx.Module,
		completion_fx.Module,
		account_fx.Module,
		itinerary_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8000"
				}
				log.Printf("Starting HTTP server on :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	itineraryController *controllers.ItineraryController,
	accountController *controllers.AccountController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r, itineraryController, accountController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	itineraryController *controllers.ItineraryController,
	accountController *controllers.AccountController) {

	authGroup := r.Group("/auth")
	authGroup.POST("/signup", accountController.SignUp)
	authGroup.POST("/login", accountController.Login)

	r.POST("/generate_itinerary", middleware.OptionalIdentityMiddleware(), itineraryController.GenerateItinerary)
	r.GET("/user", middleware.RequireIdentityMiddleware(), accountController.GetCurrentUser)

	itinerariesGroup := r.Group("/itineraries", middleware.RequireIdentityMiddleware())
	itinerariesGroup.GET("", itineraryController.GetItinerariesByUser)
	itinerariesGroup.GET("/:itineraryId", itineraryController.GetItineraryById)
	itinerariesGroup.PUT("/:itineraryId", itineraryController.UpdateItinerary)
	itinerariesGroup.DELETE("/:itineraryId", itineraryController.DeleteItinerary)
	itinerariesGroup.GET("/:itineraryId/similar", itineraryController.GetSimilarItineraries)
}
