package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"

	"github.com/Abberdo/FlexConnect-MVP/internal/config"
	"github.com/Abberdo/FlexConnect-MVP/internal/db"
	"github.com/Abberdo/FlexConnect-MVP/internal/handlers"
	"github.com/Abberdo/FlexConnect-MVP/internal/middleware"
	"github.com/Abberdo/FlexConnect-MVP/internal/realtime"
	"github.com/Abberdo/FlexConnect-MVP/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	var st store.Store
	if cfg.DBDriver != "" {
		gdb, err := db.Connect(cfg.DBDriver, cfg.DBDSN)
		if err != nil {
			log.Fatal(err)
		}
		if err := db.Migrate(gdb); err != nil {
			log.Fatal(err)
		}
		st = store.NewGormStore(gdb)
		log.Printf("Using %s store", cfg.DBDriver)
	} else {
		st = store.NewMemoryStore()
		log.Println("DB_DRIVER not set; using in-memory store")
	}

	rdb := realtime.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
	if rdb != nil {
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Redis configured but unreachable:", err)
		}
	}

	hub := realtime.NewHub()
	go hub.Run()
	go realtime.RunSubscriber(context.Background(), rdb, hub)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders:    "Content-Length",
		AllowCredentials: true,
	}))

	authH := &handlers.AuthHandler{
		Store:     st,
		JWTSecret: cfg.JWTSecret,
		Expires:   cfg.JWTExpiresMin,
	}
	googleH := &handlers.GoogleOAuthHandler{
		Store:           st,
		JWTSecret:       cfg.JWTSecret,
		Expires:         cfg.JWTExpiresMin,
		GoogleClientID:  cfg.GoogleClientID,
		GoogleSecret:    cfg.GoogleSecret,
		GoogleRedirect:  cfg.GoogleRedirect,
		FrontendBaseURL: cfg.FrontendBaseURL,
	}
	freelancerH := handlers.NewFreelancerHandler(st)
	clientH := handlers.NewClientHandler(st)
	jobH := handlers.NewJobHandler(st)
	projectH := handlers.NewProjectHandler(st)
	messageH := handlers.NewMessageHandler(st, hub, rdb, cfg.JWTSecret)
	reviewH := handlers.NewReviewHandler(st)
	dashboardH := handlers.NewDashboardHandler(st)

	api := app.Group("/api")

	// public
	api.Post("/auth/register", authH.Register)
	api.Post("/auth/login", authH.Login)
	api.Post("/auth/logout", authH.Logout)
	api.Get("/auth/google/start", googleH.GoogleStart)
	api.Get("/auth/google/callback", googleH.GoogleCallback)

	api.Get("/freelancers", freelancerH.List)
	api.Get("/freelancers/:id/profile", freelancerH.GetProfile)
	api.Get("/freelancers/:id/projects", freelancerH.GetProjects)
	api.Get("/freelancers/:id/reviews", freelancerH.GetReviews)
	api.Get("/clients/:id/profile", clientH.GetProfile)
	api.Get("/clients/:id/jobs", clientH.GetJobs)
	api.Get("/clients/:id/projects", clientH.GetProjects)
	api.Get("/jobs", jobH.List)
	api.Get("/jobs/:id", jobH.Get)
	api.Get("/projects/:id", projectH.Get)

	// authenticated
	auth := api.Group("/",
		middleware.JWTFromCookie(cfg.JWTSecret),
		middleware.AttachLocals(),
	)

	auth.Get("/user", authH.CurrentUser)
	auth.Get("/dashboard", dashboardH.Get)

	auth.Post("/jobs", middleware.RequireUserType("client"), jobH.Create)
	auth.Post("/projects", middleware.RequireUserType("client"), projectH.Create)
	auth.Patch("/projects/:id", projectH.Update)
	auth.Post("/reviews", middleware.RequireUserType("client"), reviewH.Create)

	auth.Get("/messages/:userId", messageH.GetConversation)
	auth.Post("/messages", messageH.Send)
	auth.Patch("/messages/:id/read", messageH.MarkRead)

	// live notifications; authenticated by token query param
	app.Get("/ws", websocket.New(messageH.WebSocketHandler))

	log.Fatal(app.Listen(":" + cfg.AppPort))
}
