// Package control is the composition root: it wires the projection
// store, session, request pipeline, refresher, and endpoint services
// into one App according to configuration.
package control

import (
	"fmt"
	"log/slog"

	"github.com/vietddude/godad/internal/api"
	"github.com/vietddude/godad/internal/apierr"
	"github.com/vietddude/godad/internal/core/config"
	"github.com/vietddude/godad/internal/infra/cache"
	"github.com/vietddude/godad/internal/rest"
	"github.com/vietddude/godad/internal/session"
)

// App bundles the wired SDK surfaces.
type App struct {
	Client  *rest.Client
	Session *session.Session

	Auth          *api.AuthService
	Users         *api.UserService
	Articles      *api.ArticleService
	Comments      *api.CommentService
	Notifications *api.NotificationService
	Categories    *api.CategoryService
	Follows       *api.FollowService
	Likes         *api.LikeService
	Points        *api.PointsService
	Uploads       *api.UploadService

	store cache.Store
}

// New builds the App from configuration.
func New(cfg *config.AppConfig) (*App, error) {
	if cfg.API.BaseURL == "" {
		return nil, fmt.Errorf("api.base_url is required")
	}

	// 1. Projection store
	var store cache.Store
	switch cfg.Cache.Backend {
	case "", "file":
		fs, err := cache.NewFileStore(cfg.Cache.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to init file cache: %w", err)
		}
		store = fs
	case "redis":
		rs, err := cache.NewRedisStore(cfg.Cache.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to init redis cache: %w", err)
		}
		store = rs
		slog.Info("Using Redis projection cache")
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}

	// 2. Session and pipeline
	sess := session.New(store)
	client := rest.New(rest.Config{
		BaseURL:   cfg.API.BaseURL,
		APIPrefix: cfg.API.Prefix,
		Timeout:   cfg.API.Timeout,
	})

	// 3. Single-flight refresher, fed by the client's bare refresh call
	refresher := session.NewRefresher(client.RefreshSession, sess)
	client.SetRefresher(refresher)

	// Default collaborators log instead of rendering; a UI embedding the
	// SDK replaces them via Client.OnNotify / Client.OnRedirect.
	client.OnNotify(func(kind apierr.Kind, message, action string) {
		slog.Info("notify", "kind", kind, "message", message, "action", action)
	})

	app := &App{
		Client:  client,
		Session: sess,
		store:   store,
	}

	// 4. Endpoint services
	app.Auth = api.NewAuthService(client, sess)
	app.Users = api.NewUserService(client, sess)
	app.Articles = api.NewArticleService(client)
	app.Comments = api.NewCommentService(client)
	app.Notifications = api.NewNotificationService(client)
	app.Categories = api.NewCategoryService(client)
	app.Follows = api.NewFollowService(client)
	app.Likes = api.NewLikeService(client)
	app.Points = api.NewPointsService(client)
	app.Uploads = api.NewUploadService(client)

	return app, nil
}

// Close releases backend connections held by the projection store.
func (a *App) Close() error {
	if c, ok := a.store.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
