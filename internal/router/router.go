package router

import (
	"net/http"

	"blogicum/internal/config"
	"blogicum/internal/handlers"
	"blogicum/internal/middleware"
	"blogicum/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const sessionName = "blogicum_session"

// New builds the engine with its middleware stack and every route. The
// returned limiter throttles form posts; the caller sweeps it.
func New(cfg *config.Config) (*gin.Engine, *middleware.IPRateLimiter, error) {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(handlers.Recovery))
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(middleware.SecurityHeaders())

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   14 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))

	renderer, err := web.LoadTemplates()
	if err != nil {
		return nil, nil, err
	}
	r.HTMLRender = renderer
	r.StaticFS("/static", http.FS(web.Static()))

	r.Use(middleware.LoadUser())

	limiter := middleware.NewIPRateLimiter(rate.Limit(cfg.FormRate), cfg.FormBurst)
	RegisterRoutes(r, cfg, limiter)
	return r, limiter, nil
}

func RegisterRoutes(r *gin.Engine, cfg *config.Config, limiter *middleware.IPRateLimiter) {
	// Handlers
	postHandler := handlers.NewPostHandler(cfg.PostsPerPage)
	commentHandler := handlers.NewCommentHandler()
	categoryHandler := handlers.NewCategoryHandler(cfg.PostsPerPage)
	userHandler := handlers.NewUserHandler(cfg.PostsPerPage)
	authHandler := handlers.NewAuthHandler()
	apiHandler := handlers.NewAPIHandler(cfg.PostsPerPage)

	throttle := middleware.RateLimit(limiter)
	login := middleware.AuthRequired()
	postOwner := middleware.PostOwnerRequired()
	commentOwner := middleware.CommentOwnerRequired()

	// 公共路由 (Public Routes)
	r.GET("/", postHandler.Index)
	r.GET("/posts/:post_id/", postHandler.Detail)
	r.GET("/category/:category_slug/", categoryHandler.Posts)
	r.GET("/profile/:username/", userHandler.Profile)
	r.GET("/pages/about/", handlers.About)
	r.GET("/pages/rules/", handlers.Rules)

	// 认证 (Auth)
	auth := r.Group("/auth")
	{
		auth.GET("/login/", authHandler.ShowLogin)
		auth.POST("/login/", throttle, authHandler.Login)
		auth.GET("/logout/", authHandler.Logout)
		auth.GET("/registration/", authHandler.ShowRegister)
		auth.POST("/registration/", throttle, authHandler.Register)
	}

	// 受保护路由 (Protected Routes)
	authorized := r.Group("/")
	authorized.Use(login)
	{
		authorized.GET("/posts/create/", postHandler.ShowCreate)
		authorized.POST("/posts/create/", throttle, postHandler.Create)

		authorized.GET("/posts/:post_id/edit/", postOwner, postHandler.ShowEdit)
		authorized.POST("/posts/:post_id/edit/", postOwner, postHandler.Update)
		authorized.GET("/posts/:post_id/delete/", postOwner, postHandler.ShowDelete)
		authorized.POST("/posts/:post_id/delete/", postOwner, postHandler.Delete)

		authorized.POST("/posts/:post_id/comment/", throttle, commentHandler.Create)
		authorized.GET("/posts/:post_id/edit_comment/:comment_id/", commentOwner, commentHandler.ShowEdit)
		authorized.POST("/posts/:post_id/edit_comment/:comment_id/", commentOwner, commentHandler.Update)
		authorized.GET("/posts/:post_id/delete_comment/:comment_id/", commentOwner, commentHandler.ShowDelete)
		authorized.POST("/posts/:post_id/delete_comment/:comment_id/", commentOwner, commentHandler.Delete)

		authorized.GET("/profile/edit/", userHandler.ShowEditProfile)
		authorized.POST("/profile/edit/", userHandler.UpdateProfile)
	}

	// 只读 JSON 接口 (Read-only JSON feed)
	api := r.Group("/api")
	api.Use(cors.New(cors.Config{
		AllowOrigins:  []string{cfg.CORSOrigin},
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
	}))
	{
		api.GET("/posts/", apiHandler.ListPosts)
		api.GET("/posts/:post_id/", apiHandler.GetPost)
	}

	r.NoRoute(handlers.NotFound)
}
