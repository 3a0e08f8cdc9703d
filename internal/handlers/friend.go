package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/vibenet/internal/models"
	"github.com/HammerMeetNail/vibenet/internal/services"
)

type FriendHandler struct {
	friendService services.FriendServiceInterface
}

func NewFriendHandler(friendService services.FriendServiceInterface) *FriendHandler {
	return &FriendHandler{friendService: friendService}
}

type SendRequestResponse struct {
	RequestID   uuid.UUID `json:"requestId"`
	RequestedAt time.Time `json:"requestedAt"`
}

type AcceptRequestResponse struct {
	Message      string    `json:"message"`
	FriendshipID uuid.UUID `json:"friendshipId"`
}

type FriendListResponse struct {
	Friends []models.Friend `json:"friends"`
	Count   int             `json:"count"`
}

func (h *FriendHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	targetID, ok := pathUUID(w, r, "userId", "user ID")
	if !ok {
		return
	}

	friendship, err := h.friendService.SendRequest(r.Context(), user.ID, targetID)
	if err != nil {
		writeServiceError(w, r, "sending friend request", err)
		return
	}

	writeJSON(w, http.StatusCreated, SendRequestResponse{
		RequestID:   friendship.ID,
		RequestedAt: friendship.RequestedAt,
	})
}

func (h *FriendHandler) AcceptRequest(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	requestID, ok := pathUUID(w, r, "requestId", "request ID")
	if !ok {
		return
	}

	friendship, err := h.friendService.AcceptRequest(r.Context(), user.ID, requestID)
	if err != nil {
		writeServiceError(w, r, "accepting friend request", err)
		return
	}

	writeJSON(w, http.StatusOK, AcceptRequestResponse{
		Message:      "Friend request accepted",
		FriendshipID: friendship.ID,
	})
}

func (h *FriendHandler) DeclineRequest(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	requestID, ok := pathUUID(w, r, "requestId", "request ID")
	if !ok {
		return
	}

	if err := h.friendService.DeclineRequest(r.Context(), user.ID, requestID); err != nil {
		writeServiceError(w, r, "declining friend request", err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Friend request declined"})
}

// CancelRequest withdraws a request the caller sent.
func (h *FriendHandler) CancelRequest(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	requestID, ok := pathUUID(w, r, "requestId", "request ID")
	if !ok {
		return
	}

	if err := h.friendService.CancelRequest(r.Context(), user.ID, requestID); err != nil {
		writeServiceError(w, r, "canceling friend request", err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Friend request canceled"})
}

func (h *FriendHandler) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	friendID, ok := pathUUID(w, r, "friendId", "friend ID")
	if !ok {
		return
	}

	if err := h.friendService.RemoveFriend(r.Context(), user.ID, friendID); err != nil {
		writeServiceError(w, r, "removing friend", err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Friend removed"})
}

func (h *FriendHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	lists, err := h.friendService.ListRequests(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, r, "listing friend requests", err)
		return
	}

	writeJSON(w, http.StatusOK, lists)
}

func (h *FriendHandler) ListFriends(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	friends, err := h.friendService.ListFriends(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, r, "listing friends", err)
		return
	}

	writeJSON(w, http.StatusOK, FriendListResponse{Friends: friends, Count: len(friends)})
}

func (h *FriendHandler) Status(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	targetID, ok := pathUUID(w, r, "userId", "user ID")
	if !ok {
		return
	}

	status, err := h.friendService.GetStatus(r.Context(), user.ID, targetID)
	if err != nil {
		writeServiceError(w, r, "getting friendship status", err)
		return
	}

	writeJSON(w, http.StatusOK, status)
}
