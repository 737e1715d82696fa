package routes

import (
	"jobboard/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterAccountRoutes registers registration, login, logout and profile routes.
func RegisterAccountRoutes(router gin.IRouter, accountHandler handlers.AccountHandlerInterface, authMiddleware gin.HandlerFunc) {
	accounts := router.Group("/accounts")
	{
		accounts.GET("/register/", accountHandler.RegisterForm)
		accounts.POST("/register/", accountHandler.Register)
		accounts.GET("/login/", accountHandler.LoginForm)
		accounts.POST("/login/", accountHandler.Login)
		accounts.GET("/logout/", authMiddleware, accountHandler.Logout)
		accounts.POST("/logout/", authMiddleware, accountHandler.Logout)
		accounts.GET("/profile/", authMiddleware, accountHandler.GetProfile)
		accounts.POST("/profile/", authMiddleware, accountHandler.UpdateProfile)
	}
}
