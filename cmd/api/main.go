package main

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AP-Porag/book-management-app/internal/book"
	"github.com/AP-Porag/book-management-app/internal/config"
	"github.com/AP-Porag/book-management-app/internal/httpx"
	"github.com/AP-Porag/book-management-app/internal/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	dbPool := mustOpenDB(cfg.DatabaseDSN)
	defer dbPool.Close()

	userService := user.NewService(user.NewPostgresRepo(dbPool))
	userHandler := user.NewHTTPHandler(userService, cfg.JWTSecret, cfg.TokenTTL)

	bookService := book.NewService(book.NewPostgresRepo(dbPool))
	bookHandler := book.NewHTTPHandler(bookService)

	router := newRouter(userHandler, bookHandler, cfg.JWTSecret, dbPool.Ping)

	rateLimit := httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst)

	var handler http.Handler = router
	handler = rateLimit.Middleware(handler)
	handler = httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes)(handler)
	handler = httpx.CORSMiddleware(strings.Split(cfg.AllowedOrigin, ","))(handler)
	handler = httpx.SecurityHeadersMiddleware(handler)
	handler = httpx.RecoveryMiddleware(handler)
	handler = httpx.AccessLogMiddleware(handler)
	handler = httpx.RequestIDMiddleware(handler)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Starting server on %s", cfg.Addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

func newRouter(userHandler *user.HTTPHandler, bookHandler *book.HTTPHandler, jwtSecret string, ping func(context.Context) error) *http.ServeMux {
	requireAuth := httpx.AuthMiddleware(jwtSecret)

	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.HandleFunc("POST /auth/register", userHandler.Register)
	router.HandleFunc("POST /auth/login", userHandler.Login)
	router.Handle("GET /auth/profile", requireAuth(http.HandlerFunc(userHandler.Profile)))

	router.Handle("POST /books", requireAuth(http.HandlerFunc(bookHandler.Create)))
	router.Handle("GET /books", requireAuth(http.HandlerFunc(bookHandler.List)))
	router.Handle("GET /books/{id}", requireAuth(http.HandlerFunc(bookHandler.Get)))
	router.Handle("PUT /books/{id}", requireAuth(http.HandlerFunc(bookHandler.Update)))
	router.Handle("DELETE /books/{id}", requireAuth(http.HandlerFunc(bookHandler.Delete)))

	return router
}

func mustOpenDB(dsn string) *pgxpool.Pool {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("cannot create db pool: %v", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		log.Fatalf("cannot ping database (%s): %v", redactDSN(dsn), err)
	}
	log.Println("database connection OK")
	return pool
}

func redactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
