package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"talkdata/agent"
	"talkdata/models"

	"github.com/gin-gonic/gin"
)

type streamEvent struct {
	Event   string             `json:"event"`
	State   string             `json:"state,omitempty"`
	Message string             `json:"message,omitempty"`
	ChatID  string             `json:"chat_id,omitempty"`
	SQL     string             `json:"sql,omitempty"`
	Chart   *models.ChartData  `json:"chart,omitempty"`
	Content string             `json:"content,omitempty"`
	Elapsed float64            `json:"elapsed_seconds,omitempty"`
	Suggest []string           `json:"suggested_questions,omitempty"`
}

// ChatMessageStreamHandler answers one user message with progress events
// @Summary      Send a chat message (streaming)
// @Description  Same pipeline as /api/chat/message but streamed over SSE: status events while the turn is processed, then a complete (or error) event with the full answer.
// @Tags         Chat
// @Accept       json
// @Produce      text/event-stream
// @Param        request  body      models.ChatRequest  true  "Chat message"
// @Success      200      {string}  string              "SSE stream"
// @Failure      400      {object}  map[string]string   "Invalid request"
// @Failure      404      {object}  map[string]string   "Dataset or chat not found"
// @Router       /api/chat/message/stream [post]
func (h *Handlers) ChatMessageStreamHandler(c *gin.Context) {
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

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.WriteHeader(http.StatusOK)

	writeEvent := func(ev streamEvent) {
		data, err := json.Marshal(ev)
		if err != nil {
			log.Printf("Error marshaling stream event: %v", err)
			return
		}
		fmt.Fprintf(c.Writer, "data: %s\n\n", data)
		c.Writer.Flush()
	}

	start := time.Now()
	writeEvent(streamEvent{Event: "start", ChatID: history.ChatID})

	result, err := h.agent.Process(c.Request.Context(), meta, history.Messages, req.Message,
		func(state agent.State, note string) {
			writeEvent(streamEvent{Event: "status", State: string(state), Message: note})
		})
	if err != nil {
		log.Printf("Error processing streamed chat message: %v", err)
		writeEvent(streamEvent{
			Event:   "error",
			State:   string(agent.StateFailed),
			Message: "요청을 처리하는 중 오류가 발생했어요. 잠시 후 다시 시도해 주세요.",
			ChatID:  history.ChatID,
		})
		return
	}

	h.recordTurn(history, req.Message, result)

	writeEvent(streamEvent{
		Event:   "complete",
		State:   string(result.State),
		ChatID:  history.ChatID,
		Content: result.Content,
		SQL:     result.SQL,
		Chart:   result.Chart,
		Suggest: result.Suggestions,
		Elapsed: time.Since(start).Seconds(),
	})
}
