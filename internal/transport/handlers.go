package transport

import (
	"encoding/json"
	"net/http"

	"shopledger/internal/cart"
	"shopledger/internal/checkout"
	"shopledger/internal/config"
	"shopledger/internal/dashboard"
	"shopledger/internal/inventory"
	"shopledger/internal/order"
	"shopledger/internal/user"
	"shopledger/internal/wishlist"
)

// Handler glues the HTTP surface to the ledgers. It holds no business
// rules; every decision is delegated.
type Handler struct {
	Cfg       *config.Config
	Users     user.Service
	Inventory inventory.Service
	Carts     cart.Service
	Wishlists wishlist.Service
	Orders    order.Service
	Checkout  checkout.Service
	Dashboard *dashboard.Service
}

func decode(r *http.Request, v any) bool {
	return json.NewDecoder(r.Body).Decode(v) == nil
}

func badRequest(w http.ResponseWriter, msg string) {
	respondJSON(w, http.StatusBadRequest, errorBody{Error: msg})
}

// requireUser resolves the caller's identity or writes 401.
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := UserID(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorBody{Error: "authentication required"})
		return "", false
	}
	return id, true
}

func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if !IsAdmin(r.Context()) {
		respondJSON(w, http.StatusForbidden, errorBody{Error: "admin access required"})
		return false
	}
	return true
}

// -- Auth --

type credentialsRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

type authResponse struct {
	User  *user.User `json:"user"`
	Token string     `json:"token"`
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decode(r, &req) {
		badRequest(w, "invalid json body")
		return
	}

	u, err := h.Users.Signup(r.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		respondError(w, err)
		return
	}

	token, err := user.GenerateJWT(u.ID, u.Email, h.Cfg.IsAdminEmail(u.Email))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, authResponse{User: u, Token: token})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decode(r, &req) {
		badRequest(w, "invalid json body")
		return
	}

	u, err := h.Users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	token, err := user.GenerateJWT(u.ID, u.Email, h.Cfg.IsAdminEmail(u.Email))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, authResponse{User: u, Token: token})
}

// -- Products --

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Inventory.ListProducts(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	var input inventory.CreateProductInput
	if !decode(r, &input) {
		badRequest(w, "invalid json body")
		return
	}

	p, err := h.Inventory.CreateProduct(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, p)
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	var input inventory.UpdateProductInput
	if !decode(r, &input) {
		badRequest(w, "invalid json body")
		return
	}

	p, err := h.Inventory.UpdateProduct(r.Context(), r.PathValue("id"), input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	if err := h.Inventory.DeleteProduct(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	var req struct {
		Stock int `json:"stock"`
	}
	if !decode(r, &req) {
		badRequest(w, "invalid json body")
		return
	}

	p, err := h.Inventory.AdjustStock(r.Context(), r.PathValue("id"), req.Stock)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// -- Cart --

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	items, err := h.Carts.GetCart(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req struct {
		ProductID string `json:"productId"`
	}
	if !decode(r, &req) {
		badRequest(w, "invalid json body")
		return
	}

	line, err := h.Carts.AddItem(r.Context(), userID, req.ProductID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, line)
}

func (h *Handler) SetCartQuantity(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if !decode(r, &req) {
		badRequest(w, "invalid json body")
		return
	}

	quantity, err := h.Carts.SetQuantity(r.Context(), userID, r.PathValue("productId"), req.Quantity)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"quantity": quantity})
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.Carts.RemoveItem(r.Context(), userID, r.PathValue("productId")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.Carts.Clear(r.Context(), userID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// -- Wishlist --

func (h *Handler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	items, err := h.Wishlists.GetWishlist(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *Handler) AddWishlistItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req struct {
		ProductID string `json:"productId"`
	}
	if !decode(r, &req) {
		badRequest(w, "invalid json body")
		return
	}

	added, err := h.Wishlists.AddItem(r.Context(), userID, req.ProductID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"added": added})
}

func (h *Handler) RemoveWishlistItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.Wishlists.RemoveItem(r.Context(), userID, r.PathValue("productId")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// -- Orders & checkout --

type checkoutRequest struct {
	ShippingAddress order.Address       `json:"shippingAddress"`
	PaymentMethod   order.PaymentMethod `json:"paymentMethod"`
}

func (h *Handler) CheckoutCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req checkoutRequest
	if !decode(r, &req) {
		badRequest(w, "invalid json body")
		return
	}

	placed, err := h.Checkout.Checkout(r.Context(), userID, req.ShippingAddress, req.PaymentMethod)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, placed)
}

func (h *Handler) MyOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	orders, err := h.Orders.GetOrdersForUser(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *Handler) AllOrders(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	orders, err := h.Orders.GetAllOrders(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	var req struct {
		Status order.Status `json:"status"`
	}
	if !decode(r, &req) {
		badRequest(w, "invalid json body")
		return
	}

	updated, err := h.Orders.UpdateStatus(r.Context(), r.PathValue("orderNumber"), req.Status)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	if err := h.Orders.DeleteOrder(r.Context(), r.PathValue("orderNumber")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// -- Admin: users & dashboard --

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	users, err := h.Users.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

func (h *Handler) SetUserActive(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	var req struct {
		Active bool `json:"active"`
	}
	if !decode(r, &req) {
		badRequest(w, "invalid json body")
		return
	}

	u, err := h.Users.SetActive(r.Context(), r.PathValue("id"), req.Active)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, u)
}

func (h *Handler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	stats, err := h.Dashboard.Snapshot(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
