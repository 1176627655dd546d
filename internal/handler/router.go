package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/blogman/internal/metrics"
	"github.com/hitoshi/blogman/internal/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// HealthChecker はヘルスチェックに必要なインターフェース。
// database.Clientの部分集合として定義する。
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	TokenVerifier     middleware.TokenVerifier
	CORSAllowedOrigin string
	Logger            *slog.Logger

	// メトリクス（nil可）
	Collector *metrics.Collector
	Gatherer  prometheus.Gatherer

	// ヘルスチェック
	HealthChecker HealthChecker

	// 認証
	TokenIssuer TokenIssuer
	AuthConfig  AuthHandlerConfig

	// ドメインサービス
	BlogService     BlogServiceInterface
	WishlistService WishlistServiceInterface
	CommentService  CommentServiceInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → CORS → Logging
//
// 所有者スコープのルートのみ認証・認可ゲートを追加で通す。
// どのルートが保護されているかはこの関数を読めば分かる構成にしている
// （ハンドラー内の暗黙のチェックには依存しない）。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// メトリクスコレクターはインターフェース引数にnilとして渡さないよう変換する
	var httpRecorder middleware.HTTPStatusRecorder
	var authRecorder middleware.AuthRejectionRecorder
	var issueRecorder TokenIssueRecorder
	if deps.Collector != nil {
		httpRecorder = deps.Collector
		authRecorder = deps.Collector
		issueRecorder = deps.Collector
	}

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewLoggingMiddleware(logger, httpRecorder))

	authHandler := NewAuthHandler(deps.TokenIssuer, issueRecorder, deps.AuthConfig)
	blogHandler := NewBlogHandler(deps.BlogService)
	wishlistHandler := NewWishlistHandler(deps.WishlistService)
	commentHandler := NewCommentHandler(deps.CommentService)

	// --- 運用系ルート ---

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("blogman server is running"))
	})

	r.Get("/health", newHealthHandler(deps.HealthChecker))

	if deps.Gatherer != nil {
		r.Handle("/metrics", metrics.Handler(deps.Gatherer))
	}

	// --- セッションライフサイクル ---

	r.Post("/jwt", authHandler.Login)
	r.Post("/logout", authHandler.Logout)

	// --- 認証不要の公開ルート ---
	// 公開範囲は意図的なスコープであり、所有者スコープのルートのみを保護する。

	r.Get("/blogs", blogHandler.ListBlogs)
	r.Post("/blogs", blogHandler.CreateBlog)
	r.Put("/blogUpdate/{id}", blogHandler.UpdateBlog)
	r.Post("/wishlist", wishlistHandler.AddWishlist)
	r.Get("/comments/{blogId}", commentHandler.ListComments)
	r.Post("/comments", commentHandler.AddComment)

	// --- 所有者スコープの保護ルート ---
	// 各ルートは所有者の抽出方法をここで明示的に宣言する。
	// ゲートはハンドラーより先に実行され、拒否時はストアに到達しない。
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewAuthMiddleware(deps.TokenVerifier, authRecorder))

		r.With(middleware.NewOwnerMiddleware(middleware.PathOwner("email"))).
			Get("/userWishlist/{email}", wishlistHandler.ListUserWishlist)

		r.With(middleware.NewOwnerMiddleware(middleware.QueryOwner("email"))).
			Get("/blog/{id}", blogHandler.GetBlogDetail)

		// 所有者がパスに現れないため、サービス層がエントリをロードして
		// 所有者一致を確認する
		r.Delete("/wishlist/{id}", wishlistHandler.RemoveWishlist)
	})

	return r
}

// newHealthHandler はヘルスチェックエンドポイントのハンドラーを返す。
// ドキュメントストアとの疎通が確認できない場合は503を返す。
func newHealthHandler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if checker != nil {
			if err := checker.Ping(r.Context()); err != nil {
				slog.Error("health check failed", slog.String("error", err.Error()))
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{"status": "unavailable"})
				return
			}
		}

		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}
