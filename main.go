package main

import (
	"fmt"
	"os"
	"time"

	"sukoon/controller"
	"sukoon/model"
	"sukoon/platform"
	"sukoon/service"

	_uuid "github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// CORSMiddleware ...
// CORS (Cross-Origin Resource Sharing)
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "http://localhost")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE, UPDATE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "X-Requested-With, Content-Type, Origin, Authorization, Accept, Client-Security-Token, Accept-Encoding, x-access-token")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
		} else {
			c.Next()
		}
	}
}

// RequestIDMiddleware ...
// Generate a unique ID and attach it to each request for future reference or use
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		uuid := _uuid.New()
		c.Writer.Header().Set("X-Request-Id", uuid.String())
		c.Set("requestId", uuid.String())
		c.Next()
	}
}

func LogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery
		if raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		latency := time.Since(start)

		status := c.Writer.Status()
		clientIP := c.ClientIP()
		method := c.Request.Method
		userAgent := c.Request.UserAgent()
		requestId := c.GetString("requestId")

		logrus.Infof(
			" [%s] %d | %v | %s | %s | %s | %s ",
			requestId,
			status,
			latency,
			clientIP,
			method,
			path,
			userAgent,
		)
	}
}

var auth = new(controller.AuthController)

// TokenAuthMiddleware ...
// JWT Authentication middleware attached to each request that needs to be authenticated to
// validate the access_token in the header
func TokenAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth.TokenValid(c)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves identity when a token is supplied but
// serves anonymous callers too. The chat endpoint uses it.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth.TokenOptional(c)
		c.Next()
	}
}

func main() {
	fmt.Println("Server started...")

	//Load the .env file
	err := godotenv.Load(".env")
	if err != nil {
		fmt.Println("failed to load the env file")
	}

	platform.InitFile("./log", "gin")

	r := gin.Default()
	r.Use(CORSMiddleware())
	r.Use(RequestIDMiddleware())
	r.Use(LogMiddleware())

	//init database
	platform.InitDB()
	model.InstallDB()

	gemini, err := platform.NewGeminiClient()
	if err != nil {
		logrus.Fatalf("failed to init generative client: %v", err)
	}
	fallback, err := service.NewFallbackPolicy()
	if err != nil {
		logrus.Fatalf("failed to init fallback policy: %v", err)
	}

	limits := service.LoadLimits()
	subscriptionService := service.NewSubscriptionService(limits)
	achievementService := &service.AchievementService{}
	chatService := service.NewChatService(model.NewChatStore(platform.DB), gemini, fallback)
	moodService := service.NewMoodService(achievementService)
	resourceService := service.NewResourceService(gemini)

	v1 := r.Group("/v1")
	{
		user := new(controller.UserController)
		v1.POST("/user/register", user.Register)
		v1.POST("/user/login", user.Login)

		//Refresh the token
		v1.POST("/token/refresh", auth.Refresh)

		v1.GET("/profile", TokenAuthMiddleware(), user.GetProfile)
		v1.PUT("/profile", TokenAuthMiddleware(), user.UpdateProfile)

		// Chat: anonymous callers are served too, history needs a login
		chat := controller.ChatController{
			Chats:         chatService,
			Achievements:  achievementService,
			Subscriptions: subscriptionService,
		}
		v1.POST("/chat", OptionalAuthMiddleware(), chat.Chat)
		v1.GET("/chat/history", TokenAuthMiddleware(), chat.History)
		v1.DELETE("/chat/history", TokenAuthMiddleware(), chat.ClearHistory)

		mood := controller.MoodController{Moods: moodService}
		v1.POST("/moods", TokenAuthMiddleware(), mood.Create)
		v1.GET("/moods", TokenAuthMiddleware(), mood.List)
		v1.DELETE("/moods/:id", TokenAuthMiddleware(), mood.Delete)

		resource := controller.ResourceController{
			Resources:     resourceService,
			Subscriptions: subscriptionService,
		}
		v1.GET("/resources", OptionalAuthMiddleware(), resource.List)
		v1.GET("/resources/:id", OptionalAuthMiddleware(), resource.Get)
		v1.POST("/resources/import", TokenAuthMiddleware(), resource.Import)

		achievement := controller.AchievementController{Achievements: achievementService}
		v1.GET("/achievements", TokenAuthMiddleware(), achievement.List)

		subscription := controller.SubscriptionController{Subscriptions: subscriptionService}
		v1.GET("/subscription/status", TokenAuthMiddleware(), subscription.Status)
	}

	c := cron.New()
	c.AddFunc("30 2 * * *", achievementService.SweepAll)
	c.AddFunc("0 8 * * 1", service.WeeklyMoodReport)
	c.Start()

	port := os.Getenv("PORT")
	r.Run(":" + port)
}
