package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"yummiz/internal/config"
	"yummiz/internal/ratelimit"
)

type Router struct {
	Engine *gin.Engine
}

func NewRouter(
	authHandler *AuthHandler,
	recipeHandler *RecipeHandler,
	requestHandler *RequestHandler,
	notificationHandler *NotificationHandler,
	otpLimiter *ratelimit.FixedWindow,
	cfg *config.Config,
) *Router {
	r := gin.Default()

	r.Use(MetricsMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// Health check
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "API Working!")
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	food := r.Group("/api/food")
	{
		food.POST("/addrecipe", recipeHandler.AddRecipe)
		food.GET("/listrecipe", recipeHandler.ListRecipes)
		food.POST("/remove", recipeHandler.RemoveRecipe)
		food.PUT("/edit/:id", recipeHandler.UpdateRecipe)
		// count before :id so the static route wins
		food.GET("/count", recipeHandler.CountRecipes)
		food.GET("/:id", recipeHandler.GetRecipe)
	}

	user := r.Group("/api/user")
	{
		user.POST("/register", authHandler.Register)
		user.POST("/login", authHandler.Login)
		user.POST("/send-otp", RateLimitMiddleware(otpLimiter), authHandler.SendOTP)
		user.POST("/verify-otp", authHandler.VerifyOTP)
		user.GET("/count", authHandler.CountUsers)
	}

	requests := r.Group("/api/recipe-requests")
	{
		requests.POST("/submit", requestHandler.Submit)
		requests.GET("", requestHandler.List)
		requests.GET("/count", requestHandler.Count)
		requests.POST("/:status", requestHandler.Decide)
	}

	// the notification inbox is polled by the public UI with no session,
	// so these routes stay open like the rest of the API
	notifications := r.Group("/api/notifications")
	{
		notifications.GET("/:userId", notificationHandler.ListForUser)
		notifications.PUT("/:id/read", notificationHandler.MarkRead)
		notifications.DELETE("/:id", notificationHandler.Delete)
	}

	return &Router{Engine: r}
}

func (r *Router) Run(port string) error {
	return r.Engine.Run(port)
}
