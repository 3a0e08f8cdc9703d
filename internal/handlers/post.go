package handlers

import (
	"net/http"

	"github.com/HammerMeetNail/vibenet/internal/models"
	"github.com/HammerMeetNail/vibenet/internal/services"
)

type PostHandler struct {
	postService services.PostServiceInterface
}

func NewPostHandler(postService services.PostServiceInterface) *PostHandler {
	return &PostHandler{postService: postService}
}

type CreatePostRequest struct {
	Content  string  `json:"content" validate:"required,max=2000"`
	ImageURL *string `json:"imageUrl" validate:"omitempty,http_url,max=2048"`
}

type PostResponse struct {
	Post interface{} `json:"post"`
}

type FeedResponse struct {
	Posts  []models.PostWithDetails `json:"posts"`
	Limit  int                      `json:"limit"`
	Offset int                      `json:"offset"`
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreatePostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	post, err := h.postService.Create(r.Context(), models.CreatePostParams{
		UserID:   user.ID,
		Content:  req.Content,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		writeServiceError(w, r, "creating post", err)
		return
	}

	writeJSON(w, http.StatusCreated, PostResponse{Post: post})
}

func (h *PostHandler) Feed(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	limit, offset := pageParams(r)
	posts, err := h.postService.Feed(r.Context(), user.ID, limit, offset)
	if err != nil {
		writeServiceError(w, r, "loading feed", err)
		return
	}

	writeJSON(w, http.StatusOK, FeedResponse{Posts: posts, Limit: limit, Offset: offset})
}

func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	postID, ok := pathUUID(w, r, "postId", "post ID")
	if !ok {
		return
	}

	post, err := h.postService.Get(r.Context(), user.ID, postID)
	if err != nil {
		writeServiceError(w, r, "getting post", err)
		return
	}

	writeJSON(w, http.StatusOK, PostResponse{Post: post})
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	postID, ok := pathUUID(w, r, "postId", "post ID")
	if !ok {
		return
	}

	if err := h.postService.Delete(r.Context(), user.ID, postID); err != nil {
		writeServiceError(w, r, "deleting post", err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Post deleted"})
}

// ListByUser serves a profile's posts. Authentication is optional; anonymous and
// non-friend viewers get an empty restricted listing.
func (h *PostHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	targetID, ok := pathUUID(w, r, "userId", "user ID")
	if !ok {
		return
	}

	limit, offset := pageParams(r)
	result, err := h.postService.ListByUser(r.Context(), viewerID(r.Context()), targetID, limit, offset)
	if err != nil {
		writeServiceError(w, r, "listing user posts", err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
