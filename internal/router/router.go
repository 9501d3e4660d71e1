package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"mercado_api_v1/internal/controller"
	"mercado_api_v1/internal/middleware"

	_ "mercado_api_v1/docs"
)

// InitRoutes registers every route.
//
// Read routes carry OptionalAuth so visibility rules can see the viewer
// without requiring a login; write routes carry JWTAuth so an anonymous
// write is a 401 before any handler runs.
func InitRoutes(r *gin.Engine,
	authCtl *controller.AuthController,
	shopCtl *controller.ShopController,
	productCtl *controller.ProductController,
	categoryCtl *controller.CategoryController) {

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authCtl.Register)
			auth.POST("/login", authCtl.Login)
			auth.POST("/refresh", authCtl.RefreshToken)
		}

		users := api.Group("/users", middleware.JWTAuth())
		{
			users.GET("/me", authCtl.GetProfile)
			users.PATCH("/me", authCtl.UpdateProfile)
			users.PUT("/me/avatar", authCtl.UploadAvatar)
		}

		shops := api.Group("/shops")
		{
			shops.GET("", middleware.OptionalAuth(), shopCtl.ListShops)
			shops.GET("/:id", middleware.OptionalAuth(), shopCtl.GetShop)
			shops.POST("", middleware.JWTAuth(), shopCtl.CreateShop)
			shops.PUT("/:id", middleware.JWTAuth(), shopCtl.UpdateShop)
			shops.PATCH("/:id", middleware.JWTAuth(), shopCtl.UpdateShop)
			shops.DELETE("/:id", middleware.JWTAuth(), shopCtl.DeleteShop)
			shops.POST("/:id/reset", middleware.JWTAuth(), shopCtl.ResetShop)
			shops.PUT("/:id/image", middleware.JWTAuth(), shopCtl.UploadImage)
		}

		products := api.Group("/products")
		{
			products.GET("", middleware.OptionalAuth(), productCtl.ListProducts)
			products.GET("/:id", middleware.OptionalAuth(), productCtl.GetProduct)
			products.POST("", middleware.JWTAuth(), productCtl.CreateProduct)
			products.PUT("/:id", middleware.JWTAuth(), productCtl.UpdateProduct)
			products.PATCH("/:id", middleware.JWTAuth(), productCtl.UpdateProduct)
			products.DELETE("/:id", middleware.JWTAuth(), productCtl.DeleteProduct)
			products.PUT("/:id/image", middleware.JWTAuth(), productCtl.UploadImage)
		}

		api.GET("/categories", categoryCtl.ListCategories)
	}
}
