package main

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	authcore "github.com/NordCoder/Bloggerus/internal/auth"
	config "github.com/NordCoder/Bloggerus/internal/config/blog-api"
	pg "github.com/NordCoder/Bloggerus/internal/repository/postgres"
	authsvc "github.com/NordCoder/Bloggerus/internal/services/blog-api/auth"
	blogsvc "github.com/NordCoder/Bloggerus/internal/services/blog-api/blog"
	categorysvc "github.com/NordCoder/Bloggerus/internal/services/blog-api/category"
	commentsvc "github.com/NordCoder/Bloggerus/internal/services/blog-api/comment"
	contactsvc "github.com/NordCoder/Bloggerus/internal/services/blog-api/contact"
)

func buildHTTPServer(cfg *config.Config, logger *zap.Logger, db *pg.DB) (*http.Server, error) {
	codec, err := authcore.NewCodec(authcore.Config{
		AccessSecret:  []byte(cfg.Auth.AccessSecret),
		RefreshSecret: []byte(cfg.Auth.RefreshSecret),
		AccessTTL:     cfg.Auth.AccessTTL,
		RefreshTTL:    cfg.Auth.RefreshTTL,
	})
	if err != nil {
		return nil, err
	}
	hasher := authcore.NewPasswordHasher()

	userRepo := pg.NewUserRepo(db)
	blogRepo := pg.NewBlogRepo(db)
	categoryRepo := pg.NewCategoryRepo(db)
	commentRepo := pg.NewCommentRepo(db)
	contactRepo := pg.NewContactRepo(db)
	outboxRepo := pg.NewOutboxRepo(db)

	authH := authsvc.NewHandler(logger, authsvc.NewUsecase(userRepo, hasher, codec))
	blogH := blogsvc.NewHandler(logger, blogsvc.New(blogRepo))
	categoryH := categorysvc.NewHandler(logger, categorysvc.New(categoryRepo, blogRepo))
	commentH := commentsvc.NewHandler(logger, commentsvc.New(commentRepo, blogRepo))
	contactH := contactsvc.NewHandler(logger, contactsvc.New(db, contactRepo, outboxRepo))

	r := mux.NewRouter()

	// public
	r.HandleFunc("/register", authH.Register).Methods(http.MethodPost)
	r.HandleFunc("/token", authH.Token).Methods(http.MethodPost)
	r.HandleFunc("/refresh", authH.Refresh).Methods(http.MethodPost)
	r.HandleFunc("/blogs", blogH.ListPublished).Methods(http.MethodGet)
	r.HandleFunc("/search/blogs", blogH.Search).Methods(http.MethodGet)
	r.HandleFunc("/categories", categoryH.List).Methods(http.MethodGet)
	r.HandleFunc("/categories/{id:[0-9]+}", categoryH.Get).Methods(http.MethodGet)
	r.HandleFunc("/categories/{id:[0-9]+}/blogs", categoryH.Blogs).Methods(http.MethodGet)
	r.HandleFunc("/comments/{id:[0-9]+}", commentH.Get).Methods(http.MethodGet)
	r.HandleFunc("/blogs/{id:[0-9]+}/comments", commentH.ListByBlog).Methods(http.MethodGet)
	r.HandleFunc("/contact", contactH.Submit).Methods(http.MethodPost)

	// requires a bearer access token
	sec := r.PathPrefix("/").Subrouter()
	sec.Use(authsvc.Middleware(codec, userRepo, logger))
	sec.HandleFunc("/blog", blogH.Create).Methods(http.MethodPost)
	sec.HandleFunc("/blog/all", blogH.ListMine).Methods(http.MethodGet)
	sec.HandleFunc("/blog/{id:[0-9]+}", blogH.Get).Methods(http.MethodGet)
	sec.HandleFunc("/blog/{id:[0-9]+}", blogH.Update).Methods(http.MethodPut)
	sec.HandleFunc("/blog/{id:[0-9]+}", blogH.Delete).Methods(http.MethodDelete)
	sec.HandleFunc("/categories", categoryH.Create).Methods(http.MethodPost)
	sec.HandleFunc("/categories/{id:[0-9]+}", categoryH.Update).Methods(http.MethodPut)
	sec.HandleFunc("/categories/{id:[0-9]+}", categoryH.Delete).Methods(http.MethodDelete)
	sec.HandleFunc("/comments", commentH.Create).Methods(http.MethodPost)
	sec.HandleFunc("/comments/{id:[0-9]+}", commentH.Update).Methods(http.MethodPut)
	sec.HandleFunc("/comments/{id:[0-9]+}", commentH.Delete).Methods(http.MethodDelete)

	handler := cors([]string{"*"})(otelhttp.NewHandler(r, "blog-api"))

	return &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}, nil
}

func serveHTTP(srv *http.Server, cfg *config.Config, logger *zap.Logger) error {
	logger.Info("http listening", zap.String("addr", cfg.Server.HTTPAddr))
	return srv.ListenAndServe()
}

func cors(origins []string) func(http.Handler) http.Handler {
	allowed := "*"
	if len(origins) == 1 {
		allowed = origins[0]
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowed)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
