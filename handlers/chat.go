package handlers

import (
	"log"
	"net/http"
	"time"

	"talkdata/agent"
	"talkdata/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const titleMaxRunes = 50

// ChatMessageHandler answers one user message about a dataset
// @Summary      Send a chat message
// @Description  Process a natural-language question about a dataset: classify it, generate and run SQL when needed, and return the answer with optional chart data. Omit chat_id to start a new conversation.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        request  body      models.ChatRequest   true  "Chat message"
// @Success      200      {object}  models.ChatResponse  "Assistant reply"
// @Failure      400      {object}  map[string]string    "Invalid request"
// @Failure      404      {object}  map[string]string    "Dataset or chat not found"
// @Failure      500      {object}  map[string]string    "Internal server error"
// @Router       /api/chat/message [post]
func (h *Handlers) ChatMessageHandler(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	meta, history, errStatus, errMsg := h.loadChatContext(&req)
	if errStatus != 0 {
		c.JSON(errStatus, gin.H{"error": errMsg})
		return
	}

	result, err := h.agent.Process(c.Request.Context(), meta, history.Messages, req.Message, nil)
	if err != nil {
		log.Printf("Error processing chat message: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process message"})
		return
	}

	assistant := h.recordTurn(history, req.Message, result)

	c.JSON(http.StatusOK, models.ChatResponse{
		ChatID:             history.ChatID,
		Message:            assistant,
		SuggestedQuestions: result.Suggestions,
	})
}

// loadChatContext resolves the dataset and the chat history for a request,
// creating a new history when no chat_id was sent. A non-zero status means
// the caller should fail the request.
func (h *Handlers) loadChatContext(req *models.ChatRequest) (*models.DatasetMeta, *models.ChatHistory, int, string) {
	meta, err := h.store.GetDataset(req.DatasetID)
	if err != nil {
		log.Printf("Error loading dataset %s: %v", req.DatasetID, err)
		return nil, nil, http.StatusInternalServerError, "Failed to load dataset"
	}
	if meta == nil {
		return nil, nil, http.StatusNotFound, "Dataset not found"
	}

	var history *models.ChatHistory
	if req.ChatID != "" {
		history, err = h.store.GetChat(req.ChatID)
		if err != nil {
			log.Printf("Error loading chat %s: %v", req.ChatID, err)
			return nil, nil, http.StatusInternalServerError, "Failed to load chat history"
		}
		if history == nil {
			return nil, nil, http.StatusNotFound, "Chat not found"
		}
		if history.DatasetID != req.DatasetID {
			return nil, nil, http.StatusBadRequest, "Chat belongs to a different dataset"
		}
	} else {
		now := time.Now()
		history = &models.ChatHistory{
			ChatID:    uuid.New().String(),
			DatasetID: req.DatasetID,
			Title:     truncateTitle(req.Message),
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	return meta, history, 0, ""
}

// recordTurn appends the user and assistant messages to the history and
// persists it. Persistence failures are logged, not surfaced: the answer has
// already been computed.
func (h *Handlers) recordTurn(history *models.ChatHistory, userMessage string, result *agent.Result) models.ChatMessage {
	now := time.Now()
	history.Messages = append(history.Messages, models.ChatMessage{
		Role:      "user",
		Content:   userMessage,
		Timestamp: now,
	})

	assistant := models.ChatMessage{
		Role:      "assistant",
		Content:   result.Content,
		Timestamp: now,
		SQLQuery:  result.SQL,
		ChartData: result.Chart,
	}
	history.Messages = append(history.Messages, assistant)
	history.UpdatedAt = now

	if err := h.store.UpsertChat(history); err != nil {
		log.Printf("Error storing chat history %s: %v", history.ChatID, err)
	}
	return assistant
}

func truncateTitle(message string) string {
	runes := []rune(message)
	if len(runes) <= titleMaxRunes {
		return message
	}
	return string(runes[:titleMaxRunes])
}

// GetChatHistoryHandler returns one conversation with all its messages
// @Summary      Get chat history
// @Tags         Chat
// @Produce      json
// @Param        chat_id  path      string  true  "Chat ID"
// @Success      200      {object}  models.ChatHistory
// @Failure      404      {object}  map[string]string  "Chat not found"
// @Router       /api/chat/history/{chat_id} [get]
func (h *Handlers) GetChatHistoryHandler(c *gin.Context) {
	chatID := c.Param("chat_id")

	history, err := h.store.GetChat(chatID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load chat history"})
		return
	}
	if history == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Chat not found"})
		return
	}

	c.JSON(http.StatusOK, history)
}

// DeleteChatHandler deletes one conversation
// @Summary      Delete chat
// @Tags         Chat
// @Produce      json
// @Param        chat_id  path      string  true  "Chat ID"
// @Success      200      {object}  map[string]string  "Deleted"
// @Failure      404      {object}  map[string]string  "Chat not found"
// @Router       /api/chat/history/{chat_id} [delete]
func (h *Handlers) DeleteChatHandler(c *gin.Context) {
	chatID := c.Param("chat_id")

	history, err := h.store.GetChat(chatID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load chat history"})
		return
	}
	if history == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Chat not found"})
		return
	}

	if err := h.store.DeleteChat(chatID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete chat"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Chat deleted", "chat_id": chatID})
}

// ListChatsByDatasetHandler lists one dataset's conversations, newest first
// @Summary      List chats for a dataset
// @Tags         Chat
// @Produce      json
// @Param        dataset_id  path      string  true  "Dataset ID"
// @Success      200         {array}   models.ChatSummary
// @Failure      500         {object}  map[string]string  "Failed to list chats"
// @Router       /api/chat/history/dataset/{dataset_id} [get]
func (h *Handlers) ListChatsByDatasetHandler(c *gin.Context) {
	summaries, err := h.store.ListChatsByDataset(c.Param("dataset_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list chats"})
		return
	}

	if summaries == nil {
		summaries = []models.ChatSummary{}
	}
	c.JSON(http.StatusOK, summaries)
}

// ListChatsHandler lists conversations, newest first
// @Summary      List chats
// @Description  List all conversations, optionally filtered by dataset_id
// @Tags         Chat
// @Produce      json
// @Param        dataset_id  query     string  false  "Filter by dataset ID"
// @Success      200         {array}   models.ChatSummary
// @Failure      500         {object}  map[string]string  "Failed to list chats"
// @Router       /api/chat/list [get]
func (h *Handlers) ListChatsHandler(c *gin.Context) {
	datasetID := c.Query("dataset_id")

	var summaries []models.ChatSummary
	var err error
	if datasetID != "" {
		summaries, err = h.store.ListChatsByDataset(datasetID)
	} else {
		summaries, err = h.store.ListChats()
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list chats"})
		return
	}

	if summaries == nil {
		summaries = []models.ChatSummary{}
	}
	c.JSON(http.StatusOK, summaries)
}
