package http

import (
	"io/fs"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)
	if h.server.RequestTimeout > 0 {
		router.Use(middleware.Timeout(h.server.RequestTimeout))
	}

	router.Route("/api", func(r chi.Router) {
		// routes without authorization
		r.Group(func(r chi.Router) {
			r.With(h.rateLimited).Post("/auth/register", h.register)
			r.With(h.rateLimited).Post("/auth/login", h.login)

			r.Get("/products", h.listProducts)
			r.Get("/products/{id}", h.getProduct)
			r.Get("/products/slug/{slug}", h.getProductBySlug)
			r.Get("/categories", h.listCategories)
			r.Get("/categories/{id}", h.getCategory)

			r.Get("/version", h.getServerVersion)
			r.Get("/health", h.getHealth)
		})

		// routes with authorization
		r.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.Get("/user/profile", h.getProfile)
			r.Put("/user/profile", h.updateProfile)

			r.Get("/cart", h.getCart)
			r.Delete("/cart", h.clearCart)
			r.Post("/cart/items", h.addCartItem)
			r.Put("/cart/items/{productID}", h.setCartItem)
			r.Delete("/cart/items/{productID}", h.removeCartItem)
			r.With(h.cartHashing).Post("/cart/merge", h.mergeCart)

			r.Post("/orders/checkout", h.checkout)
			r.Get("/orders", h.listMyOrders)
			r.Get("/orders/{id}", h.getOrder)
			r.Post("/orders/{id}/cancel", h.cancelOrder)
		})

		// admin routes
		r.Route("/admin", func(r chi.Router) {
			r.Use(h.auth, h.adminOnly)

			r.Post("/products", h.createProduct)
			r.Put("/products/{id}", h.updateProduct)
			r.Delete("/products/{id}", h.deleteProduct)
			r.Post("/products/{id}/image", h.uploadProductImage)

			r.Post("/categories", h.createCategory)
			r.Put("/categories/{id}", h.updateCategory)
			r.Delete("/categories/{id}", h.deleteCategory)

			r.Get("/users", h.listUsers)
			r.Put("/users/{id}/role", h.setUserRole)
			r.Delete("/users/{id}", h.deleteUser)

			r.Get("/orders", h.listOrders)
			r.Put("/orders/{id}/status", h.updateOrderStatus)
		})
	})

	if h.files.ImagesDir != "" {
		prefix := "/" + strings.Trim(h.files.PublicPrefix, "/")
		router.Handle(prefix+"/*", http.StripPrefix(prefix+"/", http.FileServer(noDirListing{http.Dir(h.files.ImagesDir)})))
	}

	router.MethodNotAllowed(methodNotAllowed)

	return router
}

// noDirListing hides directory indexes of the image folder.
type noDirListing struct {
	fs http.FileSystem
}

func (n noDirListing) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}
	stat, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if stat.IsDir() {
		_ = f.Close()
		return nil, fs.ErrNotExist
	}
	return f, nil
}
