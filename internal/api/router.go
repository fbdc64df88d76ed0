package api

import (
	"database/sql"
	"net/http"

	"freshstock/internal/model"
)

// NewRouter creates the API router with all endpoints registered.
//
// Reads are public; stock mutations require authentication. Creating items
// and lots is restricted to managers, selling is open to any account.
func NewRouter(db *sql.DB, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	usersHandler := &UsersHandler{DB: db}
	itemsHandler := &ItemsHandler{DB: db}
	lotsHandler := &LotsHandler{DB: db}

	authMW := AuthMiddleware(jwtSecret)
	requireAdmin := RequireRole(model.RoleAdmin)
	requireManager := RequireRole(model.RoleManager)

	// Public: login.
	mux.HandleFunc("POST /auth/login", authHandler.Login)

	// Authenticated routes.
	mux.Handle("PUT /auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))

	// Users (admin only).
	mux.Handle("GET /users", authMW(requireAdmin(http.HandlerFunc(usersHandler.List))))
	mux.Handle("POST /users", authMW(requireAdmin(http.HandlerFunc(usersHandler.Create))))
	mux.Handle("GET /users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Get))))
	mux.Handle("PUT /users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Update))))
	mux.Handle("PUT /users/{id}/password", authMW(requireAdmin(http.HandlerFunc(usersHandler.ResetPassword))))
	mux.Handle("DELETE /users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Delete))))

	// Items and stock: reads public, writes authenticated.
	mux.HandleFunc("GET /items", itemsHandler.List)
	mux.HandleFunc("GET /items/{id}", itemsHandler.Get)
	mux.HandleFunc("GET /items/{id}/quantity", lotsHandler.Quantity)
	mux.Handle("POST /items", authMW(requireManager(http.HandlerFunc(itemsHandler.Create))))
	mux.Handle("POST /items/{id}/add", authMW(requireManager(http.HandlerFunc(lotsHandler.AddLot))))
	mux.Handle("POST /items/{id}/sell", authMW(http.HandlerFunc(lotsHandler.Sell)))

	return mux
}
