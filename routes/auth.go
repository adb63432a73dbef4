package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/murali55525/erode-local-sub000/auth"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, deps Deps) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", auth.RegisterHandler(deps.DB))
		authGroup.POST("/login", auth.LoginHandler(deps.DB, deps.UserCarts, deps.GuestRepo))

		// Google sign-in for users and admins
		authGroup.POST("/google-user", auth.GoogleUserLoginHandler(deps.DB, deps.UserCarts, deps.GuestRepo))
		authGroup.POST("/google-admin", auth.GoogleAdminLoginHandler(deps.DB))

		authGroup.POST("/guest", auth.CreateGuestUser(deps.DB))
	}
}
