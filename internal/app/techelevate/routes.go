// Package techelevate предоставляет маршруты для основного приложения.
package techelevate

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/tech-elevate/internal/config"
	"github.com/magabrotheeeer/tech-elevate/internal/http/handlers/auth/token"
	"github.com/magabrotheeeer/tech-elevate/internal/http/handlers/coupon/couponcreate"
	"github.com/magabrotheeeer/tech-elevate/internal/http/handlers/coupon/couponlist"
	"github.com/magabrotheeeer/tech-elevate/internal/http/handlers/coupon/couponremove"
	"github.com/magabrotheeeer/tech-elevate/internal/http/handlers/coupon/couponupdate"
	"github.com/magabrotheeeer/tech-elevate/internal/http/handlers/coupon/couponvalidate"
	"github.com/magabrotheeeer/tech-elevate/internal/http/handlers/health"
	"github.com/magabrotheeeer/tech-elevate/internal/http/handlers/payment/intentcreate"
	"github.com/magabrotheeeer/tech-elevate/internal/http/handlers/product/accepted"
	"github.com/magabrotheeeer/tech-elevate/internal/http/handlers/product/create"
	"github.com/magabrotheeeer/tech-elevate/internal/http/handlers/product/featured"
	"github.com/magabrotheeeer/tech-elevate/internal/http/handlers/product/list"
	"github.com/magabrotheeeer/tech-elevate/internal/http/handlers/product/listall"
	"github.com/magabrotheeeer/tech-elevate/internal/http/handlers/product/moderate"
	"github.com/magabrotheeeer/tech-elevate/internal/http/handlers/product/read"
	"github.com/magabrotheeeer/tech-elevate/internal/http/handlers/product/remove"
	"github.com/magabrotheeeer/tech-elevate/internal/http/handlers/product/report"
	"github.com/magabrotheeeer/tech-elevate/internal/http/handlers/product/reported"
	"github.com/magabrotheeeer/tech-elevate/internal/http/handlers/product/trending"
	"github.com/magabrotheeeer/tech-elevate/internal/http/handlers/product/update"
	"github.com/magabrotheeeer/tech-elevate/internal/http/handlers/product/upvote"
	reviewadd "github.com/magabrotheeeer/tech-elevate/internal/http/handlers/review/add"
	reviewlist "github.com/magabrotheeeer/tech-elevate/internal/http/handlers/review/list"
	"github.com/magabrotheeeer/tech-elevate/internal/http/handlers/stats"
	"github.com/magabrotheeeer/tech-elevate/internal/http/handlers/user/get"
	"github.com/magabrotheeeer/tech-elevate/internal/http/handlers/user/setrole"
	"github.com/magabrotheeeer/tech-elevate/internal/http/handlers/user/subscribe"
	"github.com/magabrotheeeer/tech-elevate/internal/http/handlers/user/upsert"
	"github.com/magabrotheeeer/tech-elevate/internal/http/middlewarectx"
	"github.com/magabrotheeeer/tech-elevate/internal/lib/jwt"
	"github.com/magabrotheeeer/tech-elevate/internal/models"
	"github.com/magabrotheeeer/tech-elevate/internal/paymentprovider"
	couponservice "github.com/magabrotheeeer/tech-elevate/internal/services/coupon"
	productservice "github.com/magabrotheeeer/tech-elevate/internal/services/product"
	reviewservice "github.com/magabrotheeeer/tech-elevate/internal/services/review"
	userservice "github.com/magabrotheeeer/tech-elevate/internal/services/user"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config,
	productService *productservice.Service, userService *userservice.Service,
	couponService *couponservice.Service, reviewService *reviewservice.Service,
	jwtMaker jwt.Maker, providerClient *paymentprovider.Client) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/jwt", token.New(logger, userService, jwtMaker).ServeHTTP)
		r.Put("/users", upsert.New(logger, userService).ServeHTTP)
		r.Get("/products/accepted", accepted.New(logger, productService).ServeHTTP)
		r.Get("/products/featured", featured.New(logger, productService).ServeHTTP)
		r.Get("/products/trending", trending.New(logger, productService).ServeHTTP)
		r.Get("/products/{id}", read.New(logger, productService).ServeHTTP)
		r.Get("/products/{id}/reviews", reviewlist.New(logger, reviewService).ServeHTTP)
		r.Get("/healthz", health.New(logger).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))

			r.Post("/products", create.New(logger, productService).ServeHTTP)
			r.Get("/products/my", list.New(logger, productService).ServeHTTP)
			r.Put("/products/{id}", update.New(logger, productService).ServeHTTP)
			r.Delete("/products/{id}", remove.New(logger, productService).ServeHTTP)
			r.Post("/products/{id}/reviews", reviewadd.New(logger, reviewService).ServeHTTP)
			r.Get("/users/{email}", get.New(logger, userService).ServeHTTP)
			r.Patch("/users/subscription", subscribe.New(logger, userService).ServeHTTP)
			r.Post("/coupons/validate", couponvalidate.New(logger, couponService).ServeHTTP)
			r.Post("/payments/create-intent", intentcreate.New(logger, providerClient, couponService,
				cfg.PaymentProvider.SubscriptionPrice, cfg.PaymentProvider.Currency).ServeHTTP)

			// Голосование и жалобы под лимитом запросов
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RateLimitMiddleware(logger))
				r.Post("/products/{id}/upvote", upvote.New(logger, productService).ServeHTTP)
				r.Post("/products/{id}/report", report.New(logger, productService).ServeHTTP)
			})

			// Конечные точки модератора
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(logger, models.RoleModerator, models.RoleAdmin))
				r.Get("/products", listall.New(logger, productService).ServeHTTP)
				r.Get("/products/reported", reported.New(logger, productService).ServeHTTP)
				r.Patch("/products/{id}/moderate", moderate.New(logger, productService).ServeHTTP)
			})

			// Конечные точки администратора
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(logger, models.RoleAdmin))
				r.Get("/admin/stats", stats.New(logger, productService).ServeHTTP)
				r.Patch("/users/{id}/role", setrole.New(logger, userService).ServeHTTP)
				r.Post("/coupons", couponcreate.New(logger, couponService).ServeHTTP)
				r.Get("/coupons", couponlist.New(logger, couponService).ServeHTTP)
				r.Put("/coupons/{id}", couponupdate.New(logger, couponService).ServeHTTP)
				r.Delete("/coupons/{id}", couponremove.New(logger, couponService).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
