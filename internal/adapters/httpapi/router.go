package httpapi

import (
	"context"
	"strings"

	"socialfeed/internal/adapters/httpapi/middleware"
	followerPort "socialfeed/internal/ports/follower"
	postPort "socialfeed/internal/ports/post"
	tagPort "socialfeed/internal/ports/tag"
	userPort "socialfeed/internal/ports/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserUseCase: اینترفیسِ لازم برای کنترلر/روتر (Inbound Port)
type UserUseCase interface {
	middleware.Authenticator
	RegisterUser(ctx context.Context, email, username, name, password string) (*userPort.UserDTO, error)
	LoginUser(ctx context.Context, email, password string) (*userPort.LoginResponse, error)
	LogoutUser(ctx context.Context, token string) error
	GetProfile(ctx context.Context, username string) (*userPort.UserDTO, error)
	UpdateProfile(ctx context.Context, actorID, username string, upd userPort.ProfileUpdate) (*userPort.UserDTO, error)
}

type PostUseCase interface {
	CreatePost(ctx context.Context, actorID string, in postPort.PostInput) (*postPort.PostDetailDTO, error)
	ListPosts(ctx context.Context, tagIDs []string, start, limit int) ([]*postPort.PostSummaryDTO, error)
	GetPost(ctx context.Context, id string) (*postPort.PostDetailDTO, error)
	UpdatePost(ctx context.Context, actorID, id string, in postPort.PostInput, partial bool) (*postPort.PostDetailDTO, error)
	DeletePost(ctx context.Context, actorID, id string) error
	UploadImage(ctx context.Context, actorID, id string, upload postPort.ImageUpload) (*postPort.PostImageDTO, error)
}

type TagUseCase interface {
	ListTags(ctx context.Context, assignedOnly bool) ([]tagPort.TagDTO, error)
	GetTag(ctx context.Context, id string) (*tagPort.TagDTO, error)
	RenameTag(ctx context.Context, actorID, id, name string) (*tagPort.TagDTO, error)
}

type FollowerUseCase interface {
	Follow(ctx context.Context, actorID, targetUsername string) (*followerPort.FollowerDTO, error)
	ListFollowers(ctx context.Context, username string) ([]*followerPort.FollowerDTO, error)
	ListFollowing(ctx context.Context, username string) ([]*followerPort.FollowingDTO, error)
}

// RouterOptions تنظیمات جانبی روتر
type RouterOptions struct {
	Logger         *zap.Logger
	MediaURL       string // اگر مسیر نسبی باشد و MediaRoot پر باشد فایل‌ها سرو می‌شوند
	MediaRoot      string
	MaxUploadBytes int64
}

// فقط روتینگ: UseCase از بیرون تزریق می‌شود
func SetupRoutes(
	userUC UserUseCase,
	postUC PostUseCase,
	tagUC TagUseCase,
	followerUC FollowerUseCase,
	opts RouterOptions,
) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(middleware.Recovery(logger), middleware.RequestLogger(logger))
	if opts.MaxUploadBytes > 0 {
		r.MaxMultipartMemory = opts.MaxUploadBytes
	}

	uc := NewUserController(userUC)
	pc := NewPostController(postUC, opts.MaxUploadBytes)
	tc := NewTagController(tagUC)
	fc := NewFollowerController(followerUC)

	if opts.MediaRoot != "" && strings.HasPrefix(opts.MediaURL, "/") {
		r.Static(strings.TrimSuffix(opts.MediaURL, "/"), opts.MediaRoot)
	}

	// مسیرهای ثبت‌نام و ورود بدون JWT Middleware
	r.POST("/users/", uc.RegisterUser)
	r.POST("/users/token/", uc.LoginUser)

	auth := r.Group("/", middleware.JWTAuthMiddleware(userUC))

	auth.DELETE("/users/token/", uc.LogoutUser)
	auth.GET("/users/:username/", uc.GetProfile)
	auth.PATCH("/users/:username/", uc.UpdateProfile)

	// مسیرهای دنبال کردن و دریافت دنبال‌کنندگان
	auth.GET("/users/:username/follower/", fc.ListFollowers)
	auth.POST("/users/:username/follower/", fc.Follow)
	auth.GET("/users/:username/following/", fc.ListFollowing)

	auth.GET("/posts/", pc.ListPosts)
	auth.POST("/posts/", pc.CreatePost)
	auth.GET("/posts/:id/", pc.GetPost)
	auth.PUT("/posts/:id/", pc.ReplacePost)
	auth.PATCH("/posts/:id/", pc.PatchPost)
	auth.DELETE("/posts/:id/", pc.DeletePost)
	auth.POST("/posts/:id/upload-image/", pc.UploadImage)

	auth.GET("/tags/", tc.ListTags)
	auth.GET("/tags/:id/", tc.GetTag)
	auth.PUT("/tags/:id/", tc.RenameTag)
	auth.PATCH("/tags/:id/", tc.RenameTag)

	return r
}

// actorID شناسه کاربر احرازشده که middleware در context گذاشته است
func actorID(c *gin.Context) string {
	return c.GetString(middleware.UserIDKey)
}
