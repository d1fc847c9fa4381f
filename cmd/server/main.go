package main

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/play2learn/backend/internal/announcements"
	"github.com/play2learn/backend/internal/auth"
	"github.com/play2learn/backend/internal/config"
	"github.com/play2learn/backend/internal/dashboard"
	"github.com/play2learn/backend/internal/database"
	"github.com/play2learn/backend/internal/middleware"
	"github.com/play2learn/backend/internal/models"
	"github.com/play2learn/backend/internal/quiz"
	"github.com/play2learn/backend/internal/rewards"
	"github.com/play2learn/backend/internal/scheduler"
	"github.com/play2learn/backend/internal/schools"
	"github.com/play2learn/backend/internal/testimonials"
)

func main() {
	cfg := config.Load()

	if cfg.JWTSecret != "" {
		middleware.JWTSecret = []byte(cfg.JWTSecret)
	}

	// Initialize database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize services
	schoolsService := schools.NewService(schools.NewStore(db))
	rewardsService := rewards.NewService(rewards.NewStore(db), cfg.DailyAttemptLimit)
	quizStore := quiz.NewStore(db)
	quizService := quiz.NewService(quizStore, rewardsService)

	// Initialize handlers
	authHandler := auth.NewHandler(db, schoolsService)
	schoolsHandler := schools.NewHandler(schoolsService)
	quizHandler := quiz.NewHandler(quizService)
	rewardsHandler := rewards.NewHandler(rewardsService)
	announcementsHandler := announcements.NewHandler(announcements.NewStore(db))
	testimonialsHandler := testimonials.NewHandler(testimonials.NewStore(db))
	dashboardHandler := dashboard.NewHandler(dashboard.NewStore(db))

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/testimonials", testimonialsHandler.ListApproved).Methods("GET")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")

	// Students
	protected.HandleFunc("/quiz/start", quizHandler.StartQuiz).Methods("POST")
	protected.HandleFunc("/quiz/submit", quizHandler.SubmitQuiz).Methods("POST")
	protected.HandleFunc("/quiz/attempts", quizHandler.ListAttempts).Methods("GET")
	protected.HandleFunc("/quiz/attempts/{id:[0-9]+}", quizHandler.GetAttempt).Methods("GET")
	protected.HandleFunc("/profile", quizHandler.GetProfile).Methods("GET")
	protected.HandleFunc("/rewards/balance", rewardsHandler.GetBalance).Methods("GET")
	protected.HandleFunc("/announcements", announcementsHandler.List).Methods("GET")

	// Parents
	parents := protected.PathPrefix("").Subrouter()
	parents.Use(middleware.RequireRole(string(models.RoleParent)))
	parents.HandleFunc("/dashboard/parent", dashboardHandler.ParentDashboard).Methods("GET")
	parents.HandleFunc("/dashboard/children", dashboardHandler.LinkChild).Methods("POST")
	parents.HandleFunc("/testimonials", testimonialsHandler.Submit).Methods("POST")

	// School staff
	staff := protected.PathPrefix("").Subrouter()
	staff.Use(middleware.RequireRole(string(models.RoleTeacher), string(models.RoleSchoolAdmin)))
	staff.HandleFunc("/dashboard/school", dashboardHandler.SchoolDashboard).Methods("GET")
	staff.HandleFunc("/announcements", announcementsHandler.Create).Methods("POST")
	staff.HandleFunc("/announcements/{id:[0-9]+}", announcementsHandler.Update).Methods("PUT")
	staff.HandleFunc("/announcements/{id:[0-9]+}", announcementsHandler.Delete).Methods("DELETE")
	staff.HandleFunc("/questions", quizHandler.CreateQuestion).Methods("POST")
	staff.HandleFunc("/questions", quizHandler.ListQuestions).Methods("GET")
	staff.HandleFunc("/questions/{id:[0-9]+}/active", quizHandler.SetQuestionActive).Methods("PUT")

	// Platform admin
	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireRole(string(models.RolePlatformAdmin)))
	admin.HandleFunc("/schools", schoolsHandler.Create).Methods("POST")
	admin.HandleFunc("/schools", schoolsHandler.List).Methods("GET")
	admin.HandleFunc("/schools/{id:[0-9]+}", schoolsHandler.Get).Methods("GET")
	admin.HandleFunc("/schools/{id:[0-9]+}", schoolsHandler.Update).Methods("PUT")
	admin.HandleFunc("/schools/{id:[0-9]+}/usage", schoolsHandler.Usage).Methods("GET")
	admin.HandleFunc("/rewards/settings", rewardsHandler.GetSettings).Methods("GET")
	admin.HandleFunc("/rewards/settings", rewardsHandler.UpdateSettings).Methods("PUT")
	admin.HandleFunc("/testimonials/pending", testimonialsHandler.ListPending).Methods("GET")
	admin.HandleFunc("/testimonials/{id:[0-9]+}/moderate", testimonialsHandler.Moderate).Methods("POST")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Daily attempt reset
	cronRunner := scheduler.Start(quizStore, rewardsService)
	defer cronRunner.Stop()

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	log.Printf("Server starting on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
