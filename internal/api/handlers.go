package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/verdantgame/world/internal/content"
	"github.com/verdantgame/world/internal/logging"
	"github.com/verdantgame/world/internal/sim"
	"github.com/verdantgame/world/internal/world"
)

type Handler struct {
	world   *world.Map
	sim     *sim.Simulation
	library *content.Library

	// Latest agent state reported by the client; the tick loop reads it.
	mu    sync.RWMutex
	agent sim.AgentState
}

func NewHandler(m *world.Map, s *sim.Simulation, lib *content.Library) *Handler {
	h := &Handler{
		world:   m,
		sim:     s,
		library: lib,
	}
	// Until a client reports in, the agent sits at the world center.
	h.agent = sim.AgentState{X: m.Width() / 2, Y: m.Height() / 2, Size: 12, Zoom: 1}
	return h
}

// Agent returns the last reported agent state for the simulation loop.
func (h *Handler) Agent() sim.AgentState {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.agent
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"service":   "world",
		"season":    h.sim.Season().String(),
		"objects":   h.sim.Count(),
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, response)
}

func (h *Handler) GetWorldInfo(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]interface{}{
		"seed":   h.world.Seed(),
		"width":  h.world.Width(),
		"height": h.world.Height(),
		"cols":   h.world.Cols(),
		"rows":   h.world.Rows(),
		"season": h.sim.Season().String(),
	})
}

func (h *Handler) GetBiome(w http.ResponseWriter, r *http.Request) {
	x, err := strconv.ParseFloat(chi.URLParam(r, "x"), 64)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid x coordinate", err)
		return
	}
	y, err := strconv.ParseFloat(chi.URLParam(r, "y"), 64)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid y coordinate", err)
		return
	}

	b := h.world.BiomeAt(x, y)
	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]interface{}{
		"x":     x,
		"y":     y,
		"biome": b.String(),
		"ocean": h.library.IsOcean(b),
		"speed": h.library.Speed(b).String(),
	})
}

func (h *Handler) GetObjects(w http.ResponseWriter, r *http.Request) {
	objects := h.sim.Objects()
	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]interface{}{
		"count":   len(objects),
		"objects": objects,
	})
}

func (h *Handler) CollectObject(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid object id", err)
		return
	}

	if !h.sim.Collect(id) {
		h.renderError(w, r, http.StatusNotFound, "object not found", nil)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]interface{}{"collected": id})
}

func (h *Handler) UpdateAgent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		X    float64 `json:"x"`
		Y    float64 `json:"y"`
		Size float64 `json:"size"`
		Zoom float64 `json:"zoom"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.Size <= 0 {
		h.renderError(w, r, http.StatusBadRequest, "size must be positive", nil)
		return
	}

	x, y := h.world.WrapPoint(req.X, req.Y)
	h.mu.Lock()
	h.agent = sim.AgentState{X: x, Y: y, Size: req.Size, Zoom: req.Zoom}
	h.mu.Unlock()
	logging.WithCoords(x, y).Debug("agent updated", "size", req.Size, "zoom", req.Zoom)

	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]interface{}{
		"x": x, "y": y, "size": req.Size, "zoom": req.Zoom,
	})
}

func (h *Handler) ChangeSeason(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Season string `json:"season"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}

	season, err := content.ParseSeason(req.Season)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "unknown season", err)
		return
	}

	h.sim.OnSeasonChange(season, h.Agent())

	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]interface{}{"season": season.String()})
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	errorResponse := ErrorResponse{
		Error:   message,
		Code:    status,
		Message: message,
	}

	if err != nil {
		log.Error("API error", "error", err, "message", message, "status", status)
		if status >= 500 {
			errorResponse.Error = "Internal server error"
		}
	}

	render.Status(r, status)
	render.JSON(w, r, errorResponse)
}
