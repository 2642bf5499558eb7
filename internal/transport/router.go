package transport

import "net/http"

// NewRouter registers every route on a fresh mux. Auth and admin checks
// live in the handlers; the middleware chain is assembled by the caller.
func NewRouter(h *Handler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/signup", h.Signup)
	mux.HandleFunc("POST /auth/login", h.Login)

	mux.HandleFunc("GET /products", h.ListProducts)

	mux.HandleFunc("GET /cart", h.GetCart)
	mux.HandleFunc("POST /cart/items", h.AddCartItem)
	mux.HandleFunc("PUT /cart/items/{productId}", h.SetCartQuantity)
	mux.HandleFunc("DELETE /cart/items/{productId}", h.RemoveCartItem)
	mux.HandleFunc("DELETE /cart", h.ClearCart)

	mux.HandleFunc("GET /wishlist", h.GetWishlist)
	mux.HandleFunc("POST /wishlist/items", h.AddWishlistItem)
	mux.HandleFunc("DELETE /wishlist/items/{productId}", h.RemoveWishlistItem)

	mux.HandleFunc("POST /checkout", h.CheckoutCart)
	mux.HandleFunc("GET /orders", h.MyOrders)

	mux.HandleFunc("POST /admin/products", h.CreateProduct)
	mux.HandleFunc("PUT /admin/products/{id}", h.UpdateProduct)
	mux.HandleFunc("DELETE /admin/products/{id}", h.DeleteProduct)
	mux.HandleFunc("PUT /admin/products/{id}/stock", h.AdjustStock)

	mux.HandleFunc("GET /admin/orders", h.AllOrders)
	mux.HandleFunc("PUT /admin/orders/{orderNumber}/status", h.UpdateOrderStatus)
	mux.HandleFunc("DELETE /admin/orders/{orderNumber}", h.DeleteOrder)

	mux.HandleFunc("GET /admin/users", h.ListUsers)
	mux.HandleFunc("PUT /admin/users/{id}/active", h.SetUserActive)
	mux.HandleFunc("GET /admin/dashboard", h.DashboardStats)

	return mux
}
