package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"betanalytix/internal/middleware"
)

// Handlers bundles the HTTP handlers registered on the router
type Handlers struct {
	Auth     *AuthHandler
	Profile  *ProfileHandler
	Bankroll *BankrollHandler
	Bet      *BetHandler
	Social   *SocialHandler
}

// NewRouter builds the echo instance with middleware and all routes
func NewRouter(h *Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.LoggerWithConfig(echomiddleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/health"
		},
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Secure())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: false,
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api")

	// public routes
	auth := api.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/logout", h.Auth.Logout)

	tipsters := api.Group("/tipsters")
	tipsters.GET("/:username", h.Social.GetTipster)
	tipsters.GET("/:username/bankrolls", h.Social.GetTipsterBankrolls)

	// authenticated routes
	protected := api.Group("", middleware.AuthMiddleware)

	protected.GET("/me", h.Profile.GetMe)
	protected.PUT("/me", h.Profile.UpdateMe)

	bankrolls := protected.Group("/bankrolls")
	bankrolls.GET("", h.Bankroll.List)
	bankrolls.POST("", h.Bankroll.Create)
	bankrolls.GET("/:id", h.Bankroll.Get)
	bankrolls.PUT("/:id", h.Bankroll.Update)
	bankrolls.DELETE("/:id", h.Bankroll.Delete)
	bankrolls.GET("/:id/stats", h.Bankroll.Stats)
	bankrolls.GET("/:id/history", h.Bankroll.History)

	bets := protected.Group("/bets")
	bets.GET("", h.Bet.List)
	bets.POST("", h.Bet.Create)
	bets.GET("/:id", h.Bet.Get)
	bets.DELETE("/:id", h.Bet.Delete)
	bets.POST("/:id/settle", h.Bet.Settle)

	protected.GET("/sports", h.Bet.Sports)
	protected.GET("/bookmakers", h.Bet.Bookmakers)

	follows := protected.Group("/follows")
	follows.POST("/:user_id", h.Social.Follow)
	follows.DELETE("/:user_id", h.Social.Unfollow)
	follows.GET("/:user_id", h.Social.FollowStatus)

	return e
}
