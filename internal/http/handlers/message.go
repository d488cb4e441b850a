package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"github.com/CGAJAY/chat-app/internal/http/middleware"
	"github.com/CGAJAY/chat-app/internal/models"
	"github.com/CGAJAY/chat-app/internal/upload"
	"github.com/CGAJAY/chat-app/internal/ws"
)

type MessageStore interface {
	Create(ctx context.Context, msg models.Message) (models.Message, error)
	Conversation(ctx context.Context, a, b bson.ObjectID) ([]models.Message, error)
}

type MessageHandler struct {
	Users    UserStore
	Messages MessageStore
	Router   *ws.Router
	Uploader upload.Uploader
	Log      *zap.Logger
}

// ListUsers returns everyone except the caller, for the sidebar.
func (h *MessageHandler) ListUsers(c *gin.Context) {
	userID := middleware.MustUserID(c)

	users, err := h.Users.ListExcept(c.Request.Context(), userID)
	if err != nil {
		h.Log.Error("list users failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, users)
}

// GetMessages returns the conversation between the caller and the user in
// the path, oldest first.
func (h *MessageHandler) GetMessages(c *gin.Context) {
	userID := middleware.MustUserID(c)

	otherID, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user id"})
		return
	}

	msgs, err := h.Messages.Conversation(c.Request.Context(), userID, otherID)
	if err != nil {
		h.Log.Error("get messages failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, msgs)
}

type sendMessageReq struct {
	Text  string `json:"text"`
	Image string `json:"image"`
}

// SendMessage persists the message, then hands it to the delivery router.
// The push is best-effort: the sender gets 201 for the persisted record
// whether or not the recipient was online to receive it live.
func (h *MessageHandler) SendMessage(c *gin.Context) {
	senderID := middleware.MustUserID(c)

	receiverID, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user id"})
		return
	}

	var req sendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid body", "error": err.Error()})
		return
	}
	if req.Text == "" && req.Image == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Message must have text or an image"})
		return
	}

	imageURL := ""
	if req.Image != "" {
		imageURL, err = h.Uploader.Upload(c.Request.Context(), req.Image)
		if err != nil {
			h.Log.Error("image upload failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
	}

	msg, err := h.Messages.Create(c.Request.Context(), models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Text:       req.Text,
		Image:      imageURL,
	})
	if err != nil {
		h.Log.Error("create message failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	h.Router.Deliver(msg)

	c.JSON(http.StatusCreated, msg)
}
