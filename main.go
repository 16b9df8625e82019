package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"adaptlearn-service/internal/config"
	"adaptlearn-service/internal/db"
	"adaptlearn-service/internal/event"
	"adaptlearn-service/internal/handlers"
	"adaptlearn-service/internal/proficiency"
	"adaptlearn-service/internal/repository"
	"adaptlearn-service/internal/service"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	gin.SetMode(cfg.GinMode)

	db.InitMongo(cfg.MongoURI)
	defer db.CloseMongo()
	database := db.Client.Database(cfg.MongoDatabase)

	var publisher *event.EventPublisher
	if cfg.RabbitMQURI != "" && cfg.EventExchange != "" {
		var err error
		publisher, err = event.NewEventPublisher(cfg.RabbitMQURI, cfg.EventExchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, events will not be published")
	}

	// Repositories
	skillRepo := repository.NewSkillRepository(database)
	proficiencyRepo := repository.NewProficiencyRepository(database)
	contentRepo := repository.NewContentRepository(database)
	linkRepo := repository.NewContentSkillRepository(database)
	quizRepo := repository.NewQuizRepository(database)
	questionRepo := repository.NewQuestionRepository(database)
	attemptRepo := repository.NewAttemptRepository(database)
	responseRepo := repository.NewResponseRepository(database)
	interactionRepo := repository.NewInteractionRepository(database)
	pathRepo := repository.NewPathRepository(database)
	userRepo := repository.NewUserRepository(database)
	profileRepo := repository.NewProfileRepository(database)

	// Services
	tracker := proficiency.NewTracker(&proficiency.Config{
		FeedbackRate: cfg.FeedbackRate,
		QuizSwing:    cfg.QuizSwing,
	}, proficiencyRepo)

	skillService := service.NewSkillService(skillRepo)
	proficiencyService := service.NewProficiencyService(tracker, proficiencyRepo, skillRepo, linkRepo, publisher)
	contentService := service.NewContentService(contentRepo, linkRepo, skillRepo, publisher)
	interactionService := service.NewInteractionService(interactionRepo, contentRepo, proficiencyService, publisher)
	quizService := service.NewQuizService(quizRepo, questionRepo, attemptRepo, responseRepo, skillRepo, publisher)
	attemptService := service.NewAttemptService(attemptRepo, responseRepo, quizRepo, questionRepo, proficiencyService, publisher)
	recommendationService := service.NewRecommendationService(proficiencyService, quizRepo, questionRepo, attemptRepo, contentRepo, linkRepo, interactionRepo)
	pathService := service.NewPathService(pathRepo, contentRepo)
	userService := service.NewUserService(userRepo, profileRepo)
	profileService := service.NewProfileService(profileRepo)

	seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	skillService.SeedDefaultSkills(seedCtx)
	cancel()

	// Handlers
	skillHandler := handlers.NewSkillHandler(skillService)
	contentHandler := handlers.NewContentHandler(contentService)
	proficiencyHandler := handlers.NewProficiencyHandler(proficiencyService)
	quizHandler := handlers.NewQuizHandler(quizService)
	attemptHandler := handlers.NewAttemptHandler(attemptService)
	interactionHandler := handlers.NewInteractionHandler(interactionService)
	recommendationHandler := handlers.NewRecommendationHandler(recommendationService)
	pathHandler := handlers.NewPathHandler(pathService)
	profileHandler := handlers.NewProfileHandler(profileService)
	userHandler := handlers.NewUserHandler(userService)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": cfg.ServiceName})
	})

	public := r.Group("/public/learn")
	{
		public.POST("/auth/register", userHandler.Register)
		public.POST("/auth/login", userHandler.Login)
		public.GET("/skills", skillHandler.ListSkills)
		public.GET("/skills/:id", skillHandler.GetSkill)
	}

	protected := r.Group("/protected/learn")
	protected.Use(handlers.RequireUser())
	protected.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("[LEARN] %v | %3d | %13v | %15s | %-7s %#v\n%s",
			param.TimeStamp.Format("2006/01/02 - 15:04:05"),
			param.StatusCode,
			param.Latency,
			param.ClientIP,
			param.Method,
			param.Path,
			param.ErrorMessage,
		)
	}))
	{
		protected.GET("/me", userHandler.Me)
		protected.GET("/profile", profileHandler.GetProfile)
		protected.PUT("/profile", profileHandler.UpdateProfile)

		protected.POST("/content", contentHandler.CreateContent)
		protected.GET("/content/:id", contentHandler.GetContent)
		protected.POST("/content/:id/skills", contentHandler.MapSkills)

		protected.GET("/skills/me", proficiencyHandler.UserSkills)
		protected.GET("/skills/weakest", proficiencyHandler.WeakestSkills)
		protected.GET("/skills/strongest", proficiencyHandler.StrongestSkills)

		protected.POST("/quizzes", quizHandler.CreateQuiz)
		protected.GET("/quizzes/:id", quizHandler.GetQuiz)
		protected.GET("/quizzes", quizHandler.MyQuizzes)
		protected.GET("/quizzes/stats", quizHandler.QuizStats)

		protected.POST("/quizzes/:id/attempts", attemptHandler.StartAttempt)
		protected.GET("/attempts", attemptHandler.MyAttempts)
		protected.GET("/attempts/:id", attemptHandler.AttemptState)
		protected.POST("/attempts/:id/answer", attemptHandler.AnswerQuestion)
		protected.POST("/attempts/:id/complete", attemptHandler.CompleteAttempt)
		protected.GET("/attempts/:id/results", attemptHandler.AttemptResults)

		protected.POST("/interactions", interactionHandler.RecordInteraction)
		protected.GET("/interactions", interactionHandler.RecentInteractions)
		protected.GET("/progress", interactionHandler.Progress)

		protected.GET("/recommendations/quizzes", recommendationHandler.RecommendedQuizzes)
		protected.GET("/recommendations/content", recommendationHandler.RecommendedContent)

		protected.POST("/paths", pathHandler.CreatePath)
		protected.GET("/paths", pathHandler.MyPaths)
		protected.GET("/paths/:id", pathHandler.GetPath)
	}

	log.Printf("%s listening on :%s", cfg.ServiceName, cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
