package handlers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"visentry-backend/logger"
	"visentry-backend/pending"
	"visentry-backend/roster"
	"visentry-backend/settings"
	"visentry-backend/wizard"
)

// Dependencies are the services the HTTP layer is built on.
type Dependencies struct {
	Visitors   VisitorStore
	Sessions   *wizard.Manager
	Roster     *roster.Register
	Pending    *pending.Queue
	NDA        *settings.NDAStore
	Logger     *zap.Logger
	CORSOrigin string
	Now        func() time.Time
}

// NewRouter wires every route of the service.
func NewRouter(d Dependencies) *gin.Engine {
	RegisterValidators()
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(logger.RequestID())
	router.Use(logger.GinMiddleware(d.Logger))
	router.Use(logger.Recovery(d.Logger))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{d.CORSOrigin}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	visitorHandler := NewVisitorHandler(d.Visitors)
	checkinHandler := NewCheckinHandler(d.Sessions, d.Roster, d.NDA, d.Now)
	pendingHandler := NewPendingHandler(d.Pending, d.Sessions)
	entryExitHandler := NewEntryExitHandler(d.Roster, d.Now)
	reportHandler := NewReportHandler(d.Roster, d.Now)
	settingsHandler := NewSettingsHandler(d.NDA, d.Now)

	api := router.Group("/api")
	{
		api.GET("/status", visitorHandler.Status)
		api.GET("/visitors", visitorHandler.ListVisitors)
		api.GET("/visitor-list", visitorHandler.VisitorList)

		// Check-in wizard
		checkins := api.Group("/checkins")
		checkins.POST("", checkinHandler.Create)
		checkins.GET("/:sid", checkinHandler.Get)
		checkins.DELETE("/:sid", checkinHandler.Discard)
		checkins.POST("/:sid/back", checkinHandler.Back)
		checkins.PUT("/:sid/basic-details", checkinHandler.BasicDetails)
		checkins.PUT("/:sid/company-details", checkinHandler.CompanyDetails)
		checkins.PUT("/:sid/photograph", checkinHandler.Photograph)
		checkins.PUT("/:sid/identity-proof", checkinHandler.IdentityProof)
		checkins.PUT("/:sid/equipment", checkinHandler.Equipment)
		checkins.POST("/:sid/members", checkinHandler.AddMember)
		checkins.POST("/:sid/members/done", checkinHandler.FinishMembers)
		checkins.POST("/:sid/members/:mid/edit", checkinHandler.EditMember)
		checkins.DELETE("/:sid/members/:mid", checkinHandler.RemoveMember)
		checkins.PUT("/:sid/members/:mid/basic-details", checkinHandler.MemberBasicDetails)
		checkins.PUT("/:sid/members/:mid/photograph", checkinHandler.MemberPhotograph)
		checkins.PUT("/:sid/members/:mid/identity-proof", checkinHandler.MemberIdentityProof)
		checkins.PUT("/:sid/members/:mid/equipment", checkinHandler.MemberEquipment)
		checkins.GET("/:sid/nda", checkinHandler.NDAForm)
		checkins.POST("/:sid/nda", checkinHandler.AcceptNDA)
		checkins.PUT("/:sid/place-to-visit", checkinHandler.PlaceToVisit)
		checkins.GET("/:sid/badge", checkinHandler.Badge)
		checkins.GET("/:sid/badge/qr.png", checkinHandler.BadgeQR)
		checkins.POST("/:sid/finish", checkinHandler.Finish)

		// Pre-registered visitors
		api.GET("/pending", pendingHandler.List)
		api.POST("/pending/:id/approve", pendingHandler.Approve)
		api.POST("/pending/:id/decline", pendingHandler.Decline)

		// Gate register
		api.GET("/entry-exit/checked-in", entryExitHandler.CheckedIn)
		api.POST("/entry-exit/:id/checkout", entryExitHandler.CheckOut)

		api.GET("/reports", reportHandler.CheckIns)
		api.GET("/settings/nda", settingsHandler.GetNDA)
		api.PUT("/settings/nda", settingsHandler.UpdateNDA)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
		})
	})

	return router
}
