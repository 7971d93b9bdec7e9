package handlers

import (
	"context"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Abberdo/FlexConnect-MVP/internal/models"
	"github.com/Abberdo/FlexConnect-MVP/internal/realtime"
	"github.com/Abberdo/FlexConnect-MVP/internal/store"
	"github.com/Abberdo/FlexConnect-MVP/internal/utils"
)

type MessageHandler struct {
	Store     store.Store
	Hub       *realtime.Hub
	RDB       *redis.Client
	JWTSecret string
}

func NewMessageHandler(s store.Store, hub *realtime.Hub, rdb *redis.Client, jwtSecret string) *MessageHandler {
	return &MessageHandler{Store: s, Hub: hub, RDB: rdb, JWTSecret: jwtSecret}
}

// GetConversation returns both directions of the exchange with the other
// user, oldest first.
func (h *MessageHandler) GetConversation(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	}

	otherID, idOK := paramID(c, "userId")
	if !idOK {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid user ID",
		})
	}

	messages, err := h.Store.ListMessagesBetween(userID, otherID)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(messages)
}

type SendMessageReq struct {
	ReceiverID uint   `json:"receiverId"`
	Content    string `json:"content"`
}

func (h *MessageHandler) Send(c *fiber.Ctx) error {
	senderID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	}

	var req SendMessageReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	errs := FieldErrors{}
	if req.ReceiverID == 0 {
		errs.Add("receiverId", "receiverId is required")
	}
	if strings.TrimSpace(req.Content) == "" {
		errs.Add("content", "Content is required")
	}
	if len(errs) > 0 {
		return validationFail(c, "Invalid message data", errs)
	}

	receiver, err := h.Store.GetUser(req.ReceiverID)
	if err != nil {
		return internalError(c)
	}
	if receiver == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Receiver not found",
		})
	}

	message, err := h.Store.CreateMessage(&models.Message{
		SenderID:   senderID,
		ReceiverID: req.ReceiverID,
		Content:    req.Content,
	})
	if err != nil {
		return internalError(c)
	}

	// Notify the receiver's live connections on this instance, and peers
	// through Redis when configured.
	notification := fiber.Map{
		"type":    "new_message",
		"message": message,
	}
	h.Hub.SendToUser(receiver.ID, notification)
	realtime.PublishToUser(context.Background(), h.RDB, receiver.ID, notification)

	return c.Status(fiber.StatusCreated).JSON(message)
}

// MarkRead marks one message read; only its receiver may do so.
func (h *MessageHandler) MarkRead(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	}

	messageID, idOK := paramID(c, "id")
	if !idOK {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid message ID",
		})
	}

	message, err := h.Store.GetMessage(messageID)
	if err != nil {
		return internalError(c)
	}
	if message == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Message not found",
		})
	}
	if message.ReceiverID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Only the receiver can mark a message read",
		})
	}

	updated, err := h.Store.MarkMessageRead(messageID)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(updated)
}

// WebSocketHandler registers a live notification connection. The client
// authenticates with its JWT as a query parameter since browsers cannot set
// headers on websocket upgrades.
func (h *MessageHandler) WebSocketHandler(c *websocket.Conn) {
	token := c.Query("token")
	claims, err := utils.ParseJWT(h.JWTSecret, token)
	if err != nil {
		log.Println("WebSocket: rejected connection with invalid token")
		c.Close()
		return
	}

	client := &realtime.Client{
		ID:     uuid.New().String(),
		UserID: claims.UserID,
		Conn:   realtime.NewWebSocketConn(c),
		Send:   make(chan []byte, 256),
	}

	h.Hub.RegisterClient(client)
	defer h.Hub.UnregisterClient(client)

	go func() {
		for msg := range client.Send {
			if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Println("WebSocket write error:", err)
				return
			}
		}
	}()

	// Drain the connection; the read loop only keeps it alive.
	for {
		var payload map[string]interface{}
		if err := c.ReadJSON(&payload); err != nil {
			break
		}
	}
}
