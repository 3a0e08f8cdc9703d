package handlers

import (
	"net/http"

	"github.com/HammerMeetNail/vibenet/internal/models"
	"github.com/HammerMeetNail/vibenet/internal/services"
)

type CommentHandler struct {
	commentService services.CommentServiceInterface
}

func NewCommentHandler(commentService services.CommentServiceInterface) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,max=1000"`
}

type CommentResponse struct {
	Comment *models.Comment `json:"comment"`
}

type CommentListResponse struct {
	Comments []models.Comment `json:"comments"`
}

func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	postID, ok := pathUUID(w, r, "postId", "post ID")
	if !ok {
		return
	}

	limit, offset := pageParams(r)
	comments, err := h.commentService.List(r.Context(), user.ID, postID, limit, offset)
	if err != nil {
		writeServiceError(w, r, "listing comments", err)
		return
	}

	writeJSON(w, http.StatusOK, CommentListResponse{Comments: comments})
}

func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	postID, ok := pathUUID(w, r, "postId", "post ID")
	if !ok {
		return
	}

	var req CreateCommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	comment, err := h.commentService.Create(r.Context(), user.ID, postID, req.Content)
	if err != nil {
		writeServiceError(w, r, "creating comment", err)
		return
	}

	writeJSON(w, http.StatusCreated, CommentResponse{Comment: comment})
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	commentID, ok := pathUUID(w, r, "commentId", "comment ID")
	if !ok {
		return
	}

	if err := h.commentService.Delete(r.Context(), user.ID, commentID); err != nil {
		writeServiceError(w, r, "deleting comment", err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Comment deleted"})
}

type LikeHandler struct {
	likeService services.LikeServiceInterface
}

func NewLikeHandler(likeService services.LikeServiceInterface) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

type LikeResponse struct {
	LikeCount int `json:"likeCount"`
}

func (h *LikeHandler) Like(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	postID, ok := pathUUID(w, r, "postId", "post ID")
	if !ok {
		return
	}

	count, err := h.likeService.Like(r.Context(), user.ID, postID)
	if err != nil {
		writeServiceError(w, r, "liking post", err)
		return
	}

	writeJSON(w, http.StatusOK, LikeResponse{LikeCount: count})
}

func (h *LikeHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	postID, ok := pathUUID(w, r, "postId", "post ID")
	if !ok {
		return
	}

	count, err := h.likeService.Unlike(r.Context(), user.ID, postID)
	if err != nil {
		writeServiceError(w, r, "unliking post", err)
		return
	}

	writeJSON(w, http.StatusOK, LikeResponse{LikeCount: count})
}

type FollowHandler struct {
	followService services.FollowServiceInterface
}

func NewFollowHandler(followService services.FollowServiceInterface) *FollowHandler {
	return &FollowHandler{followService: followService}
}

func (h *FollowHandler) Follow(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	targetID, ok := pathUUID(w, r, "userId", "user ID")
	if !ok {
		return
	}

	if err := h.followService.Follow(r.Context(), user.ID, targetID); err != nil {
		writeServiceError(w, r, "following user", err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Now following user"})
}

func (h *FollowHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	targetID, ok := pathUUID(w, r, "userId", "user ID")
	if !ok {
		return
	}

	if err := h.followService.Unfollow(r.Context(), user.ID, targetID); err != nil {
		writeServiceError(w, r, "unfollowing user", err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Unfollowed user"})
}
