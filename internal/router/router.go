// Package router 路由与中间件装配
package router

import (
	"github.com/shupin-market/internal/config"
	publichandlers "github.com/shupin-market/internal/http/handlers/public"
	storehandlers "github.com/shupin-market/internal/http/handlers/store"
	"github.com/shupin-market/internal/logger"
	"github.com/shupin-market/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	storeHandler := storehandlers.New(c)

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/products", publicHandler.GetProducts)
			public.GET("/products/:id", publicHandler.GetProduct)
			public.GET("/products/by-slug/:slug", publicHandler.GetProductBySlug)
			public.GET("/products/:id/reviews", publicHandler.GetProductReviews)
			public.GET("/products/check-slug", publicHandler.CheckSlug)
			public.GET("/categories", publicHandler.GetCategories)
			public.GET("/stores/:slug", publicHandler.GetStoreBySlug)
			public.GET("/stores/:slug/products", publicHandler.GetStoreProducts)
		}

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.Register)
			auth.POST("/login", publicHandler.Login)
		}

		// 商家接口（需鉴权）
		seller := apiV1.Group("/store")
		seller.Use(UserJWTAuthMiddleware(c.UserAuthService))
		{
			seller.POST("", storeHandler.CreateStore)
			seller.GET("/me", storeHandler.GetMyStore)
			seller.PUT("/:id", storeHandler.UpdateStore)

			seller.GET("/products", storeHandler.GetMyProducts)
			seller.GET("/products/:id", storeHandler.GetMyProduct)
			seller.POST("/products", storeHandler.CreateProduct)
			seller.PUT("/products/:id", storeHandler.UpdateProduct)
			seller.PATCH("/products/:id/status", storeHandler.UpdateProductStatus)
			seller.DELETE("/products/:id", storeHandler.DeleteProduct)
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(c.UserAuthService))
		{
			user.POST("/reviews", storeHandler.AddReview)
			user.DELETE("/reviews/:id", storeHandler.DeleteReview)
		}

		// 管理接口（需管理员角色）
		admin := apiV1.Group("/admin")
		admin.Use(UserJWTAuthMiddleware(c.UserAuthService), AdminOnlyMiddleware())
		{
			admin.POST("/categories", storeHandler.CreateCategory)
			admin.DELETE("/categories/:id", storeHandler.DeleteCategory)
			admin.POST("/categories/sweep", storeHandler.SweepCategories)
		}
	}

	return r
}
