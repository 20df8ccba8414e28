package main

import (
	"log"
	"os"

	"github.com/nathanael250/travooz-hms-sub003/routes"
	"github.com/nathanael250/travooz-hms-sub003/storage"
	"github.com/nathanael250/travooz-hms-sub003/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	godotenv.Load()
	storage.InitializeDB()
	storage.InitializeRedis()
	storage.InitializeMedia()

	app := iris.New()
	app.Validator = validator.New()

	// CORS for the dashboard (http://localhost:3000)
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		if err := ctx.ReadJSON(&tokenInput); err != nil {
			return ""
		}
		return tokenInput.RefreshToken
	})

	user := app.Party("/api/user")
	{
		user.Post("/login", routes.Login)
		user.Post("/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)
		user.Post("/register", accessTokenVerifierMiddleware, utils.ManagerOnlyMiddleware, routes.Register)
		user.Get("/me", accessTokenVerifierMiddleware, utils.StaffContextMiddleware, routes.GetCurrentUser)
	}

	roomTypes := app.Party("/api/room-types", accessTokenVerifierMiddleware, utils.StaffContextMiddleware)
	{
		roomTypes.Get("/", routes.ListRoomTypes)
		roomTypes.Post("/", utils.ManagerOnlyMiddleware, routes.CreateRoomType)
		roomTypes.Patch("/{id:uint}", utils.ManagerOnlyMiddleware, routes.UpdateRoomType)
		roomTypes.Delete("/{id:uint}", utils.ManagerOnlyMiddleware, routes.DeleteRoomType)
	}

	rooms := app.Party("/api/rooms", accessTokenVerifierMiddleware, utils.StaffContextMiddleware)
	{
		rooms.Get("/availability", routes.GetRoomAvailability)
		rooms.Get("/", routes.ListRooms)
		rooms.Get("/{id:uint}", routes.GetRoom)
		rooms.Post("/", utils.ManagerOnlyMiddleware, routes.CreateRoom)
		rooms.Patch("/{id:uint}", utils.ManagerOnlyMiddleware, routes.UpdateRoom)
		rooms.Delete("/{id:uint}", utils.ManagerOnlyMiddleware, routes.DeleteRoom)
	}

	bookings := app.Party("/api/bookings", accessTokenVerifierMiddleware, utils.StaffContextMiddleware)
	{
		bookings.Post("/", routes.CreateBooking)
		bookings.Get("/", routes.ListBookings)
		bookings.Get("/{id:uint}", routes.GetBooking)
		bookings.Post("/{id:uint}/confirm", routes.ConfirmBooking)
		bookings.Post("/{id:uint}/cancel", routes.CancelBooking)
		bookings.Get("/{id:uint}/folio", routes.GetFolio)
		bookings.Post("/{id:uint}/charges", routes.CreateCharge)
		bookings.Get("/{id:uint}/charges", routes.ListCharges)
		bookings.Post("/{id:uint}/payments", routes.RecordPayment)
		bookings.Get("/{id:uint}/payments", routes.ListPayments)
		bookings.Post("/{id:uint}/invoice", routes.GenerateInvoice)
		bookings.Get("/{id:uint}/invoice", routes.GetBookingInvoice)
	}

	frontdesk := app.Party("/api/frontdesk", accessTokenVerifierMiddleware, utils.StaffContextMiddleware)
	{
		frontdesk.Post("/bookings/{id:uint}/assign-room", routes.AssignRoom)
		frontdesk.Post("/bookings/{id:uint}/check-in", routes.CheckIn)
		frontdesk.Post("/bookings/{id:uint}/check-out", routes.CheckOut)
		frontdesk.Post("/bookings/{id:uint}/no-show", routes.MarkNoShow)
	}

	housekeeping := app.Party("/api/housekeeping", accessTokenVerifierMiddleware, utils.StaffContextMiddleware)
	{
		housekeeping.Get("/rooms", routes.ListHousekeepingBoard)
		housekeeping.Post("/rooms/{id:uint}/status", routes.UpdateHousekeepingStatus)
		housekeeping.Get("/rooms/{id:uint}/log", routes.GetHousekeepingLog)
	}

	invoices := app.Party("/api/invoices", accessTokenVerifierMiddleware, utils.StaffContextMiddleware)
	{
		invoices.Get("/", routes.ListInvoices)
		invoices.Get("/{id:uint}", routes.GetInvoice)
	}

	serviceRequests := app.Party("/api/service-requests", accessTokenVerifierMiddleware, utils.StaffContextMiddleware)
	{
		serviceRequests.Post("/", routes.CreateServiceRequest)
		serviceRequests.Get("/", routes.ListServiceRequests)
		serviceRequests.Patch("/{id:uint}/status", routes.UpdateServiceRequestStatus)
	}

	foodOrders := app.Party("/api/food-orders", accessTokenVerifierMiddleware, utils.StaffContextMiddleware)
	{
		foodOrders.Post("/", routes.CreateFoodOrder)
		foodOrders.Get("/", routes.ListFoodOrders)
		foodOrders.Patch("/{id:uint}/status", routes.UpdateFoodOrderStatus)
	}

	settings := app.Party("/api/settings", accessTokenVerifierMiddleware, utils.ManagerOnlyMiddleware)
	{
		settings.Get("/", routes.GetSettings)
		settings.Put("/", routes.UpdateSettings)
	}

	upload := app.Party("/api/upload", accessTokenVerifierMiddleware, utils.ManagerOnlyMiddleware)
	{
		upload.Post("/", routes.UploadImage)
	}

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Get("/stats", routes.AdminGetStats)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	log.Println("listening on :" + port)
	app.Listen(":" + port)
}
