package routes

import (
	"github.com/kaltre10/repuestos-oriente-sub001/controllers"
	"github.com/kaltre10/repuestos-oriente-sub001/handlers"
	"github.com/kaltre10/repuestos-oriente-sub001/middleware"

	"github.com/gin-gonic/gin"
)

func InitializeRoutes(router *gin.Engine) {
	router.POST("/login", controllers.Login)
	router.POST("/registration", controllers.RegisterUser)
	router.POST("/google-login", controllers.GoogleLogin)
	router.POST("/forgot-password", controllers.RequestPasswordReset)
	router.POST("/reset-password", controllers.ResetPassword)
	router.Static("/uploads", "./uploads")

	// Catálogo público
	router.GET("/brands", controllers.GetAllBrands)
	router.GET("/carmodels", controllers.GetCarModels)
	router.GET("/categories", controllers.GetAllCategories)
	router.GET("/subcategories", controllers.GetSubcategories)
	router.GET("/products", controllers.GetAllProducts)
	router.GET("/products/:id", controllers.GetProduct)
	router.GET("/products/:id/questions", controllers.GetQuestionsByProduct)
	router.GET("/products/:id/ratings", controllers.GetRatingsByProduct)
	router.GET("/paymentmethods", controllers.GetPaymentMethods)
	router.GET("/paymenttypes", controllers.GetPaymentTypes)
	router.GET("/configs/current", controllers.GetCurrentConfig)
	router.POST("/visits", controllers.RecordVisit)
	router.GET("/order/:token", handlers.GetOrderByToken)

	client := router.Group("/client")
	client.Use(middleware.AuthMiddleware("client"))
	{
		client.GET("/my-data", handlers.GetClientInfo)
		client.PUT("/my-data", handlers.UpdateClientInfo)
		client.POST("/sales", middleware.ValidateSaleIntegrity(), controllers.CreateSale)
		client.POST("/sales/checkout", middleware.ValidateCheckoutIntegrity(), controllers.Checkout)
		client.POST("/sales/receipt", controllers.UploadReceipt)
		client.GET("/my-sales", controllers.GetMySales)
		client.GET("/my-orders", controllers.GetMyOrders)
		client.GET("/orders/:id", controllers.GetOrderByID)
		client.POST("/questions", controllers.CreateQuestion)
		client.POST("/ratings", controllers.CreateRating)
		client.DELETE("/ratings/:id", controllers.DeleteRating)
	}

	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware("admin"))
	{
		admin.POST("/brands", controllers.CreateBrand)
		admin.PUT("/brands/:id", controllers.EditBrand)
		admin.DELETE("/brands/:id", controllers.DeleteBrand)

		admin.POST("/carmodels", controllers.CreateCarModel)
		admin.DELETE("/carmodels/:id", controllers.DeleteCarModel)

		admin.POST("/categories", controllers.CreateCategory)
		admin.PUT("/categories/:id", controllers.EditCategory)
		admin.DELETE("/categories/:id", controllers.DeleteCategory)

		admin.POST("/subcategories", controllers.CreateSubcategory)
		admin.DELETE("/subcategories/:id", controllers.DeleteSubcategory)

		admin.GET("/products", controllers.GetAllProductsAdmin)
		admin.POST("/products", controllers.AddProduct)
		admin.PUT("/products/:id", controllers.EditProduct)
		admin.DELETE("/products/:id", controllers.DeleteProduct)

		admin.POST("/configs", controllers.CreateConfig)
		admin.GET("/configs", controllers.GetAllConfigs)
		admin.DELETE("/configs/:id", controllers.DeleteConfig)

		admin.POST("/paymenttypes", controllers.CreatePaymentType)
		admin.DELETE("/paymenttypes/:id", controllers.DeletePaymentType)
		admin.POST("/paymentmethods", controllers.CreatePaymentMethod)
		admin.PUT("/paymentmethods/:id", controllers.EditPaymentMethod)
		admin.DELETE("/paymentmethods/:id", controllers.DeletePaymentMethod)

		admin.GET("/sales", controllers.GetAllSales)
		admin.PUT("/sales/:id", controllers.UpdateSale)
		admin.DELETE("/sales/:id", controllers.DeleteSale)
		admin.GET("/orders", controllers.GetAllOrders)
		admin.PUT("/orders/:id", controllers.UpdateOrderStatus)

		admin.PUT("/questions/:id", controllers.AnswerQuestion)
		admin.DELETE("/questions/:id", controllers.DeleteQuestion)

		admin.GET("/visits/stats", controllers.GetVisitStats)
		admin.GET("/reports/sales/:id", controllers.GetProductSalesReport)
		admin.GET("/reports/sales-export", controllers.ExportSalesExcel)
	}
}
