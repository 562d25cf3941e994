package http

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/RoomChat/internal/app/orch"
	"github.com/dkeye/RoomChat/internal/core"
	"github.com/dkeye/RoomChat/internal/domain"
)

const nickKey = "nick"

type NickRequest struct {
	Name string `json:"name"`
}

type NickResponse struct {
	Name string `json:"name"`
}

type handlers struct {
	orch *orch.Orchestrator
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"sessions": h.orch.Registry.Len(),
		"rooms":    h.orch.Rooms.Len(),
	})
}

func (h *handlers) listRooms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rooms": h.orch.Rooms.List()})
}

func (h *handlers) roomMembers(c *gin.Context) {
	room, ok := h.orch.Rooms.Lookup(domain.RoomName(c.Param("name")))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": room.Name(), "members": room.MembersSnapshot()})
}

func (h *handlers) evictRoom(c *gin.Context) {
	name := domain.RoomName(c.Param("name"))
	n, ok := h.orch.EvictRoom(name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}
	log.Info().Str("module", "adapters.http").Str("room", string(name)).Int("kicked", n).Msg("room evicted")
	c.Status(http.StatusNoContent)
}

func (h *handlers) listSessions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"sessions": h.orch.Registry.Snapshot()})
}

func (h *handlers) kickSession(c *gin.Context) {
	sid := core.SessionID(c.Param("id"))
	if !h.orch.Kick(sid) {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	log.Info().Str("module", "adapters.http").Str("sid", string(sid)).Msg("session kicked")
	c.Status(http.StatusNoContent)
}

func (h *handlers) setNick(c *gin.Context) {
	var req NickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing or invalid name"})
		return
	}
	if err := domain.ValidateUsername(req.Name); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s := sessions.Default(c)
	s.Set(nickKey, req.Name)
	if err := s.Save(); err != nil {
		log.Error().Err(err).Str("module", "adapters.http").Msg("session save")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store name"})
		return
	}
	c.JSON(http.StatusOK, NickResponse{Name: req.Name})
}

func (h *handlers) whoAmI(c *gin.Context) {
	c.JSON(http.StatusOK, NickResponse{Name: preferredNick(c)})
}

// preferredNick is the name remembered in the cookie session, or "".
func preferredNick(c *gin.Context) string {
	name, _ := sessions.Default(c).Get(nickKey).(string)
	return name
}
