package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"petpet/internal/auth"
	"petpet/internal/domain"
	"petpet/internal/service"
	"petpet/internal/storage"
)

const (
	sessionCookieName = "token"

	sessionContextKey = "session"
	postContextKey    = "post"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users          service.UserService
	posts          service.PostService
	likes          service.LikeService
	sessions       *auth.SessionManager
	store          storage.Store
	frontendOrigin string
	secureCookies  bool
}

func NewHandler(users service.UserService, posts service.PostService, likes service.LikeService, sessions *auth.SessionManager, store storage.Store, frontendOrigin string, secureCookies bool) *Handler {
	return &Handler{
		users:          users,
		posts:          posts,
		likes:          likes,
		sessions:       sessions,
		store:          store,
		frontendOrigin: frontendOrigin,
		secureCookies:  secureCookies,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware(h.frontendOrigin))

	router.GET("/public/:fileName", h.serveImage)

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})

		api.POST("/register", h.register)
		api.POST("/login", h.login)
		api.GET("/posts", h.listPosts)

		authed := api.Group("")
		authed.Use(h.requireSession())
		{
			authed.GET("/me", h.me)
			authed.POST("/post", h.createPost)
			authed.DELETE("/post", h.loadPost(), h.deletePost)
			authed.POST("/post/like", h.loadPost(), h.likePost)
			authed.DELETE("/post/like", h.loadPost(), h.unlikePost)
			authed.GET("/user/likedPosts", h.listLikedPosts)
			authed.GET("/user/notification", h.listNotifications)
		}
	}
}

func corsMiddleware(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// requireSession reads the session cookie, verifies it and stashes the
// claims for the handler. Guards run as an explicit chain before the
// handler: requireSession, then loadPost where a post is targeted.
func (h *Handler) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(sessionCookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not logged in."})
			return
		}

		claims, err := h.sessions.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Set(sessionContextKey, claims)
		c.Next()
	}
}

type postIDRequest struct {
	PostID int64 `json:"postId"`
}

// loadPost parses {postId} from the body and resolves the post, stashing
// it for the handler. Both a missing id and an unknown post are 404s.
func (h *Handler) loadPost() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req postIDRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.PostID == 0 {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Post ID missing in body."})
			return
		}

		post, err := h.posts.GetPost(c.Request.Context(), req.PostID)
		if err != nil {
			if errors.Is(err, service.ErrPostNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Post not found."})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unexpected error occurred on the server."})
			return
		}

		c.Set(postContextKey, post)
		c.Next()
	}
}

func sessionFrom(c *gin.Context) *auth.SessionClaims {
	return c.MustGet(sessionContextKey).(*auth.SessionClaims)
}

func postFrom(c *gin.Context) *domain.Post {
	return c.MustGet(postContextKey).(*domain.Post)
}

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email, username, and password are required."})
		return
	}

	_, err := h.users.Register(c.Request.Context(), req.Email, req.Username, req.Password)
	switch {
	case errors.Is(err, service.ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email, username, and password are required."})
	case errors.Is(err, service.ErrUserExists):
		c.JSON(http.StatusBadRequest, gin.H{"error": "This user already exists."})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unexpected error occurred on the server."})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "User created successfully"})
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required."})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, service.ErrMissingFields) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required."})
		return
	}
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"message": "Wrong email or password."})
		return
	}

	token, err := h.sessions.Issue(user.ID, user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unexpected error occurred on the server."})
		return
	}

	// the front end reads the cookie, so it stays visible to scripts
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(sessionCookieName, token, int(h.sessions.TTL().Seconds()), "/", "", h.secureCookies, false)

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged successfully",
		"user": UserResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
	})
}

func (h *Handler) me(c *gin.Context) {
	claims := sessionFrom(c)
	c.JSON(http.StatusOK, gin.H{
		"user": UserResponse{
			ID:       claims.UserID,
			Username: claims.Username,
		},
	})
}

func (h *Handler) listPosts(c *gin.Context) {
	feed, err := h.posts.ListPosts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unexpected error occurred on the server."})
		return
	}

	resp := make([]FeedPostResponse, len(feed))
	for i := range feed {
		resp[i] = feedPostToResponse(feed[i])
	}
	c.JSON(http.StatusOK, gin.H{"posts": resp})
}

func (h *Handler) createPost(c *gin.Context) {
	claims := sessionFrom(c)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file image!"})
		return
	}
	description := c.PostForm("description")

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unexpected error occurred on the server."})
		return
	}
	defer file.Close()

	post, err := h.posts.CreatePost(c.Request.Context(), claims.UserID, description, fileHeader.Filename, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unexpected error occurred on the server."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": postToResponse(*post)})
}

func (h *Handler) deletePost(c *gin.Context) {
	claims := sessionFrom(c)
	post := postFrom(c)

	err := h.posts.DeletePost(c.Request.Context(), post.ID, claims.UserID)
	switch {
	case errors.Is(err, service.ErrNotOwner):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized."})
	case errors.Is(err, service.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found."})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Post can't be deleted."})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully."})
	}
}

func (h *Handler) likePost(c *gin.Context) {
	claims := sessionFrom(c)
	post := postFrom(c)

	err := h.likes.Like(c.Request.Context(), claims.UserID, post.ID)
	switch {
	case errors.Is(err, service.ErrAlreadyLiked):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "You already liked this post."})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Can't like the post"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Post liked successfully"})
	}
}

func (h *Handler) unlikePost(c *gin.Context) {
	claims := sessionFrom(c)
	post := postFrom(c)

	err := h.likes.Unlike(c.Request.Context(), claims.UserID, post.ID)
	switch {
	case errors.Is(err, service.ErrNotLiked):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "You didn't like this post."})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Can't unlike the post"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Post unliked successfully"})
	}
}

func (h *Handler) listLikedPosts(c *gin.Context) {
	claims := sessionFrom(c)

	posts, err := h.likes.ListLikedPosts(c.Request.Context(), claims.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unexpected error occurred on the server."})
		return
	}

	resp := make([]PostResponse, len(posts))
	for i := range posts {
		resp[i] = postToResponse(posts[i])
	}
	c.JSON(http.StatusOK, gin.H{"posts": resp})
}

func (h *Handler) listNotifications(c *gin.Context) {
	claims := sessionFrom(c)

	notifications, err := h.likes.Notifications(c.Request.Context(), claims.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unexpected error occurred on the server."})
		return
	}

	resp := make([]NotificationResponse, len(notifications))
	for i := range notifications {
		resp[i] = NotificationResponse{
			PostID:   notifications[i].PostID,
			UserID:   notifications[i].UserID,
			Username: notifications[i].Username,
		}
	}
	c.JSON(http.StatusOK, gin.H{"notifications": resp})
}

func (h *Handler) serveImage(c *gin.Context) {
	fileName := c.Param("fileName")
	if fileName == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "File name missing!"})
		return
	}

	obj, err := h.store.Open(c.Request.Context(), fileName)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unexpected error occurred on the server."})
		return
	}
	defer obj.Body.Close()

	c.DataFromReader(http.StatusOK, obj.Size, obj.ContentType, obj.Body, nil)
}

type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

type UserShortResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type PostResponse struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"userId"`
	ImagePath   string `json:"image_path"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

type FeedPostResponse struct {
	PostResponse
	Like int               `json:"like"`
	User UserShortResponse `json:"user"`
}

type NotificationResponse struct {
	PostID   int64  `json:"postId"`
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}

func postToResponse(post domain.Post) PostResponse {
	return PostResponse{
		ID:          post.ID,
		UserID:      post.UserID,
		ImagePath:   post.ImagePath,
		Description: post.Description,
		CreatedAt:   post.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   post.UpdatedAt.Format(time.RFC3339),
	}
}

func feedPostToResponse(feed domain.FeedPost) FeedPostResponse {
	return FeedPostResponse{
		PostResponse: postToResponse(feed.Post),
		Like:         feed.LikeCount,
		User: UserShortResponse{
			ID:       feed.Owner.ID,
			Username: feed.Owner.Username,
		},
	}
}
