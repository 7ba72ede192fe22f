package httpx

import (
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Auth     *AuthHandler
	Courts   *CourtHandler
	Bookings *BookingHandler
	Matches  *MatchHandler
	Payments *PaymentHandler
	Wizard   *WizardHandler

	JWTSecret string
}

func NewRouter(h Handlers) *gin.Engine {
	r := gin.Default()

	// gateway-facing endpoints live outside /v1: server-to-server callback
	// plus the payer's redirect landing pages
	r.POST("/payments/callback", h.Payments.Callback)
	r.GET("/payments/ok", h.Payments.OKPage)
	r.GET("/payments/fail", h.Payments.FailPage)

	v1 := r.Group("/v1")
	{
		v1.POST("/auth/register", h.Auth.Register)
		v1.POST("/auth/login", h.Auth.Login)

		me := v1.Group("/users/me")
		me.Use(JWTAuth(h.JWTSecret))
		me.GET("", h.Auth.GetMe)
		me.PUT("", h.Auth.UpdateMe)

		v1.GET("/courts", h.Courts.List)
		v1.GET("/courts/:id", h.Courts.Get)
		v1.GET("/courts/:id/slots", h.Bookings.Slots)
		v1.GET("/courts/:id/bookings", h.Bookings.ForCourtDate)

		admin := v1.Group("/courts")
		admin.Use(JWTAuth(h.JWTSecret), RequireRole("OWNER", "ADMIN"))
		admin.POST("", h.Courts.Create)
		admin.PUT("/:id", h.Courts.Update)
		admin.DELETE("/:id", h.Courts.Delete)

		secured := v1.Group("")
		secured.Use(JWTAuth(h.JWTSecret))
		{
			secured.POST("/bookings", h.Bookings.Create)
			secured.GET("/bookings", h.Bookings.List)
			secured.GET("/bookings/:id", h.Bookings.Get)
			secured.POST("/bookings/:id/cancel", h.Bookings.Cancel)

			owner := secured.Group("")
			owner.Use(RequireRole("OWNER", "ADMIN"))
			owner.POST("/bookings/:id/confirm", h.Bookings.Confirm)

			secured.POST("/booking-sessions", h.Wizard.Create)
			secured.GET("/booking-sessions/:id", h.Wizard.Get)
			secured.POST("/booking-sessions/:id/events", h.Wizard.Dispatch)

			secured.POST("/payments/init", h.Payments.Init)

			secured.POST("/matches", h.Matches.Create)
			secured.GET("/matches", h.Matches.List)
			secured.GET("/matches/:id", h.Matches.Get)
			secured.PUT("/matches/:id", h.Matches.Update)
			secured.POST("/matches/:id/players", h.Matches.AddPlayer)
			secured.DELETE("/matches/:id/players/:userId", h.Matches.RemovePlayer)
		}
	}

	return r
}
