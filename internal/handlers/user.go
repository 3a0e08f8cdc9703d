package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/vibenet/internal/models"
	"github.com/HammerMeetNail/vibenet/internal/services"
)

type UserHandler struct {
	userService   services.UserServiceInterface
	friendService services.FriendServiceInterface
	followService services.FollowServiceInterface
}

func NewUserHandler(userService services.UserServiceInterface, friendService services.FriendServiceInterface, followService services.FollowServiceInterface) *UserHandler {
	return &UserHandler{
		userService:   userService,
		friendService: friendService,
		followService: followService,
	}
}

type UserSearchResponse struct {
	Users []models.PublicUser `json:"users"`
}

type ProfileResponse struct {
	User             models.PublicUser         `json:"user"`
	Bio              string                    `json:"bio"`
	FriendshipStatus models.RelationshipStatus `json:"friendshipStatus"`
	RequestID        *uuid.UUID                `json:"requestId,omitempty"`
	IsFollowing      bool                      `json:"isFollowing"`
	Followers        int                       `json:"followers"`
	Following        int                       `json:"following"`
}

type UpdateProfileRequest struct {
	DisplayName     *string `json:"displayName" validate:"omitempty,min=1,max=50"`
	Bio             *string `json:"bio" validate:"omitempty,max=500"`
	ProfileImageURL *string `json:"profileImageUrl" validate:"omitempty,http_url,max=2048"`
}

type UserResponse struct {
	User *models.User `json:"user"`
}

func (h *UserHandler) Search(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	query := r.URL.Query().Get("q")
	if len(strings.TrimSpace(query)) < 2 {
		writeJSON(w, http.StatusOK, UserSearchResponse{Users: []models.PublicUser{}})
		return
	}

	users, err := h.userService.Search(r.Context(), user.ID, query)
	if err != nil {
		writeServiceError(w, r, "searching users", err)
		return
	}

	writeJSON(w, http.StatusOK, UserSearchResponse{Users: users})
}

// Profile returns a user's public profile with the relationship as seen by the caller.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	viewer := GetUserFromContext(r.Context())
	if viewer == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	targetID, ok := pathUUID(w, r, "userId", "user ID")
	if !ok {
		return
	}

	target, err := h.userService.GetByID(r.Context(), targetID)
	if err != nil {
		writeServiceError(w, r, "getting user", err)
		return
	}

	status, err := h.friendService.GetStatus(r.Context(), viewer.ID, targetID)
	if err != nil {
		writeServiceError(w, r, "getting friendship status", err)
		return
	}

	counts, err := h.followService.Counts(r.Context(), targetID)
	if err != nil {
		writeServiceError(w, r, "counting follows", err)
		return
	}

	var following bool
	if viewer.ID != targetID {
		following, err = h.followService.IsFollowing(r.Context(), viewer.ID, targetID)
		if err != nil {
			writeServiceError(w, r, "checking follow", err)
			return
		}
	}

	writeJSON(w, http.StatusOK, ProfileResponse{
		User:             target.Public(),
		Bio:              target.Bio,
		FriendshipStatus: status.Status,
		RequestID:        status.RequestID,
		IsFollowing:      following,
		Followers:        counts.Followers,
		Following:        counts.Following,
	})
}

func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req UpdateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := h.userService.UpdateProfile(r.Context(), user.ID, models.UpdateProfileParams{
		DisplayName:     req.DisplayName,
		Bio:             req.Bio,
		ProfileImageURL: req.ProfileImageURL,
	})
	if err != nil {
		writeServiceError(w, r, "updating profile", err)
		return
	}

	writeJSON(w, http.StatusOK, UserResponse{User: updated})
}
