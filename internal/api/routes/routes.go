// internal/api/routes/routes.go
package routes

import (
	"time"

	"food-donation-api-server/internal/api/handlers"
	"food-donation-api-server/internal/api/middleware"
	"food-donation-api-server/internal/auth"
	"food-donation-api-server/internal/donation"
	"food-donation-api-server/internal/notify"
	"food-donation-api-server/internal/s3"
	"food-donation-api-server/internal/socket"
	"food-donation-api-server/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter wires the handlers and middleware into the gin engine.
func SetupRouter(
	donations store.DonationStore,
	donors store.DonorStore,
	ngos store.NgoStore,
	admins store.AdminStore,
	dispatcher *notify.Dispatcher,
	s3Uploader *s3.Uploader,
	wsHub *socket.Hub,
	jwtExpiration time.Duration,
) *gin.Engine {
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	engine := donation.NewEngine()

	accountHandler := &handlers.AccountHandler{Donors: donors, Ngos: ngos, Admins: admins, JWTExpiration: jwtExpiration}
	donationHandler := &handlers.DonationHandler{Donations: donations, Donors: donors, Ngos: ngos, Engine: engine, Dispatcher: dispatcher}
	statusHandler := &handlers.StatusHandler{Donations: donations, Engine: engine, Dispatcher: dispatcher, Hub: wsHub, S3Uploader: s3Uploader}
	webSocketHandler := &handlers.WebSocketHandler{Hub: wsHub}

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/ws", webSocketHandler.ServeWs)

		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/donor/register", accountHandler.RegisterDonor)
			authRoutes.POST("/ngo/register", accountHandler.RegisterNgo)
			authRoutes.POST("/login", accountHandler.Login)
		}

		donations := apiV1.Group("/donations")
		donations.Use(middleware.Authenticate())
		{
			// Routes shared by donors and NGOs.
			shared := donations.Group("/")
			shared.Use(middleware.Authorize(auth.RoleDonor, auth.RoleNgo, auth.RoleAdmin))
			{
				shared.GET("/:id", donationHandler.GetDonation)
				shared.GET("/donor/:donorId", donationHandler.ListByDonor)
				shared.GET("/donor/:donorId/stats", donationHandler.DonorStats)
			}

			// Donor-only routes.
			donorRoutes := donations.Group("/")
			donorRoutes.Use(middleware.Authorize(auth.RoleDonor))
			{
				donorRoutes.POST("/", donationHandler.CreateDonation)
				donorRoutes.PUT("/:id", donationHandler.UpdateDonation)
			}

			// NGO-only routes: lifecycle management and dashboards.
			ngoRoutes := donations.Group("/")
			ngoRoutes.Use(middleware.Authorize(auth.RoleNgo, auth.RoleAdmin))
			{
				ngoRoutes.PUT("/:id/status", statusHandler.UpdateStatus)
				ngoRoutes.PUT("/:id/schedule-pickup", statusHandler.SchedulePickup)
				ngoRoutes.POST("/:id/proof-photo", statusHandler.UploadProofPhoto)
				ngoRoutes.GET("/ngo/:ngoId", donationHandler.ListByNgo)
				ngoRoutes.GET("/ngo/:ngoId/status/:status", donationHandler.ListByNgoAndStatus)
			}
		}
	}

	return router
}
