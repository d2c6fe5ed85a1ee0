package main

import (
	"context"
	"log"
	"time"

	"github.com/Kariqs/littlelemon-api/initializers"
	"github.com/Kariqs/littlelemon-api/logger"
	"github.com/Kariqs/littlelemon-api/routes"
	"github.com/Kariqs/littlelemon-api/services"
	"github.com/Kariqs/littlelemon-api/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	initializers.LoadEnv()
	cfg, err := initializers.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	if err := initializers.ConnectToDB(cfg); err != nil {
		log.Fatal(err)
	}
	if err := initializers.SyncDatabase(initializers.DB); err != nil {
		log.Fatal(err)
	}
	if err := initializers.SeedSuperuser(initializers.DB, cfg); err != nil {
		log.Fatal(err)
	}

	appLog := logger.NewLogger("littlelemon-api", cfg.AppEnv == "debug")

	var images services.ImageStore
	if cfg.S3Bucket != "" {
		store, err := services.NewS3ImageStore(context.Background(), cfg.S3Bucket)
		if err != nil {
			log.Fatal(err)
		}
		images = store
	} else {
		log.Println("AWS_S3_BUCKET not set, menu item image uploads are disabled.")
	}

	server := gin.Default()
	server.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	routes.RegisterRoutes(server, routes.Deps{
		DB:     initializers.DB,
		Tokens: utils.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL),
		Images: images,
		Log:    appLog,
	})
	if err := server.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
