package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"blog-showcase/cmd/api/dto"
	"blog-showcase/cmd/api/handlers"
	"blog-showcase/cmd/api/metrics"
	"blog-showcase/cmd/api/middleware"
	"blog-showcase/cmd/api/services"
	"blog-showcase/cmd/api/trace"
	_ "blog-showcase/docs"
)

// Deps 는 라우터가 필요로 하는 서비스 묶음이다.
type Deps struct {
	Posts          *services.PostService
	Filters        *services.FilterService
	Metrics        *metrics.Metrics
	AllowedOrigins []string
}

func New(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(corsMiddleware(deps.AllowedOrigins))
	r.Use(middleware.RequestTrace())
	r.Use(deps.Metrics.Middleware())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.StatusResponseDTO{Status: "ok"})
	})
	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		api.GET("/posts", handlers.ListPostsHandler(deps.Posts))
		api.GET("/posts/featured", handlers.FeaturedPostsHandler(deps.Posts))
		api.GET("/posts/recent", handlers.RecentPostsHandler(deps.Posts))
		api.GET("/posts/:id", handlers.GetPostHandler(deps.Posts))

		api.GET("/filters/categories", handlers.CategoryFiltersHandler(deps.Filters))
		api.GET("/filters/tags", handlers.TagFiltersHandler(deps.Filters))
	}

	return r
}

// corsMiddleware 는 프런트엔드(브라우저)에서 직접 API 를 호출할 수 있도록 rs/cors 를 gin 에 연결한다.
func corsMiddleware(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins:       origins,
		AllowedMethods:       []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders:       []string{"Content-Type", trace.HeaderRequestID},
		ExposedHeaders:       []string{trace.HeaderRequestID, trace.HeaderSpanID},
		OptionsSuccessStatus: http.StatusNoContent,
	})
	return func(ctx *gin.Context) {
		c.HandlerFunc(ctx.Writer, ctx.Request)
		if ctx.Request.Method == http.MethodOptions && ctx.GetHeader("Access-Control-Request-Method") != "" {
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}
