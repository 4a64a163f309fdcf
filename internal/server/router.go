package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"storeadmin/internal/auth"
	authcontroller "storeadmin/internal/auth/controller"
	categorycontroller "storeadmin/internal/category/controller"
	customercontroller "storeadmin/internal/customer/controller"
	dashboardcontroller "storeadmin/internal/dashboard/controller"
	ordercontroller "storeadmin/internal/order/controller"
	productcontroller "storeadmin/internal/product/controller"
	"storeadmin/internal/realtime"
	settingscontroller "storeadmin/internal/settings/controller"
	uploadscontroller "storeadmin/internal/uploads/controller"
)

type Controllers struct {
	Session    *authcontroller.SessionController
	Orders     *ordercontroller.OrdersController
	Categories *categorycontroller.CategoriesController
	Products   *productcontroller.ProductsController
	Customers  *customercontroller.CustomersController
	Dashboard  *dashboardcontroller.DashboardController
	Settings   *settingscontroller.SettingsController
	Uploads    *uploadscontroller.UploadsController
}

// NewRouter wires every endpoint. The session routes and the websocket
// are public; everything else requires a bearer token.
func NewRouter(
	ctrl Controllers,
	hub *realtime.Hub,
	issuer *auth.TokenIssuer,
	storageRoot string,
	storageBaseURL string,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Post("/api/session", ctrl.Session.SignIn)
	r.Delete("/api/session", ctrl.Session.SignOut)
	r.Get("/ws", hub.HandleWebSocket)

	fileServer := http.StripPrefix(storageBaseURL, http.FileServer(http.Dir(storageRoot)))
	r.Get(storageBaseURL+"*", fileServer.ServeHTTP)

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(issuer, logger))

		r.Route("/api/orders", func(r chi.Router) {
			r.Get("/", ctrl.Orders.List)
			r.Get("/{orderId}", ctrl.Orders.Get)
			r.Post("/{orderId}/advance", ctrl.Orders.Advance)
			r.Put("/{orderId}", ctrl.Orders.Update)
			r.Delete("/{orderId}", ctrl.Orders.Delete)
		})

		r.Route("/api/categories", func(r chi.Router) {
			r.Get("/", ctrl.Categories.List)
			r.Post("/", ctrl.Categories.Create)
			r.Put("/{categoryId}", ctrl.Categories.Update)
			r.Delete("/{categoryId}", ctrl.Categories.Delete)
		})

		r.Route("/api/products", func(r chi.Router) {
			r.Get("/", ctrl.Products.List)
			r.Get("/{productId}", ctrl.Products.Get)
			r.Post("/", ctrl.Products.Create)
			r.Put("/{productId}", ctrl.Products.Update)
			r.Delete("/{productId}", ctrl.Products.Delete)
		})

		r.Get("/api/customers", ctrl.Customers.List)
		r.Get("/api/dashboard", ctrl.Dashboard.Stats)

		r.Route("/api/settings", func(r chi.Router) {
			r.Get("/branding", ctrl.Settings.GetBranding)
			r.Put("/branding", ctrl.Settings.SaveBranding)
			r.Get("/preferences", ctrl.Settings.GetPreferences)
			r.Put("/preferences/live-updates", ctrl.Settings.SetLiveUpdates)
			r.Put("/preferences/date-range", ctrl.Settings.SetDateRange)
		})

		r.Post("/api/uploads", ctrl.Uploads.Upload)
	})

	return r
}
