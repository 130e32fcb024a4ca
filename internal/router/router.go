package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lorecanvas/lorecanvas/internal/handlers"
	"github.com/lorecanvas/lorecanvas/internal/middleware"
	"github.com/lorecanvas/lorecanvas/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", handlers.HealthCheck)

	auth := r.Group("/auth")
	{
		auth.POST("/signup", handlers.Signup)
		auth.POST("/login", handlers.Login)
		auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
	}

	projects := r.Group("/projects", middleware.AuthMiddleware())
	{
		projects.GET("", handlers.ListProjects)
		projects.POST("", handlers.CreateProject)

		// Everything below is project-scoped: ProjectAccess resolves the
		// project for its owner or aborts, so handlers never see a project
		// the caller does not own.
		scoped := projects.Group("/:project_id", middleware.ProjectAccess())
		{
			scoped.GET("", handlers.GetProject)
			scoped.PUT("", handlers.UpdateProject)
			scoped.DELETE("", handlers.DeleteProject)

			scoped.GET("/characters", handlers.ListCharacters)
			scoped.POST("/characters", handlers.CreateCharacter)
			scoped.GET("/characters/:character_id", handlers.GetCharacter)
			scoped.PUT("/characters/:character_id", handlers.UpdateCharacter)
			scoped.DELETE("/characters/:character_id", handlers.DeleteCharacter)

			scoped.GET("/relationships", handlers.ListRelationships)
			scoped.POST("/relationships", handlers.CreateRelationship)
			scoped.PUT("/relationships/:relationship_id", handlers.UpdateRelationship)
			scoped.DELETE("/relationships/:relationship_id", handlers.DeleteRelationship)
		}
	}

	relationshipTypes := r.Group("/relationship-types", middleware.AuthMiddleware())
	{
		relationshipTypes.GET("", handlers.ListRelationshipTypes)
		relationshipTypes.POST("", handlers.CreateRelationshipType)
		relationshipTypes.PUT("/:type_id", handlers.UpdateRelationshipType)
		relationshipTypes.DELETE("/:type_id", handlers.DeleteRelationshipType)
	}

	return r
}
