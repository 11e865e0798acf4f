package httpHandler

import (
	"errors"
	"net/http"

	"chat-server/usecases"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	useCase *usecases.ChatUseCase
}

func NewChatHandler(uc *usecases.ChatUseCase) *ChatHandler {
	return &ChatHandler{useCase: uc}
}

type createRoomRequest struct {
	Creator string `json:"creator" binding:"required"`
}

type joinRoomRequest struct {
	RoomID    string `json:"roomId" binding:"required"`
	UserEmail string `json:"userEmail" binding:"required"`
}

// CreateRoom POST /chat/create-room
func (h *ChatHandler) CreateRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	roomID, err := h.useCase.CreateRoom(req.Creator)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create the chat room",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Chat room created successfully",
		"roomId":  roomID,
	})
}

// JoinRoom POST /chat/join-room
func (h *ChatHandler) JoinRoom(c *gin.Context) {
	var req joinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	alreadyMember, err := h.useCase.JoinRoom(req.RoomID, req.UserEmail)
	if err != nil {
		if errors.Is(err, usecases.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Chat room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to join the chat room",
		})
		return
	}

	if alreadyMember {
		c.JSON(http.StatusOK, gin.H{
			"message": "User is already a member of this chat room",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Joined chat room successfully",
	})
}
