package handler

import (
	"context"
	"net/http"

	"github.com/osse101/PetalGarden_Go/internal/domain"
	"github.com/osse101/PetalGarden_Go/internal/grid"
	"github.com/osse101/PetalGarden_Go/internal/logger"
	"github.com/osse101/PetalGarden_Go/internal/scheduler"
)

// CellRequest addresses one cell of the garden
type CellRequest struct {
	X *int `json:"x" validate:"required,gte=0"`
	Y *int `json:"y" validate:"required,gte=0"`
}

// Position converts the request into a grid position
func (r CellRequest) Position() domain.Position {
	return domain.Pos(*r.X, *r.Y)
}

// GridResponse is the full grid snapshot
type GridResponse struct {
	Width  int               `json:"width"`
	Height int               `json:"height"`
	Cells  []domain.CellView `json:"cells"`
}

// GridHandler serves the grid. Every call is marshalled onto the update loop
// through the dispatcher.
type GridHandler struct {
	grid       grid.Service
	dispatcher scheduler.Dispatcher
	radius     int
}

// NewGridHandler creates a new grid handler
func NewGridHandler(g grid.Service, dispatcher scheduler.Dispatcher, defaultRadius int) *GridHandler {
	if defaultRadius < 1 {
		defaultRadius = domain.DefaultNeighborRadius
	}
	return &GridHandler{grid: g, dispatcher: dispatcher, radius: defaultRadius}
}

// HandleSnapshot returns every cell in row-major order
func (h *GridHandler) HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	var resp GridResponse
	if !h.dispatch(w, r, func() {
		resp = GridResponse{Width: h.grid.Width(), Height: h.grid.Height(), Cells: h.grid.Snapshot()}
	}) {
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// HandleCell returns a single cell
func (h *GridHandler) HandleCell(w http.ResponseWriter, r *http.Request) {
	pos, ok := positionFromQuery(r, w)
	if !ok {
		return
	}

	var view *domain.CellView
	if !h.dispatch(w, r, func() {
		if c := h.grid.GetCell(pos); c != nil {
			v := c.View()
			view = &v
		}
	}) {
		return
	}
	if view == nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidPosition)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// HandleNeighbors returns the in-bounds cells within radius of a cell,
// excluding the cell itself
func (h *GridHandler) HandleNeighbors(w http.ResponseWriter, r *http.Request) {
	pos, ok := positionFromQuery(r, w)
	if !ok {
		return
	}
	radius, ok := GetOptionalIntQueryParam(r, w, QueryParamRadius, h.radius)
	if !ok {
		return
	}
	radius = min(radius, max(h.grid.Width(), h.grid.Height()))

	views := []domain.CellView{}
	if !h.dispatch(w, r, func() {
		for _, c := range h.grid.GetNeighbors(pos, radius) {
			views = append(views, c.View())
		}
	}) {
		return
	}
	respondJSON(w, http.StatusOK, views)
}

// HandlePlant plants a random seed in an empty cell
func (h *GridHandler) HandlePlant(w http.ResponseWriter, r *http.Request) {
	h.command(w, r, domain.CommandPlant, MsgPlanted, func(ctx context.Context, pos domain.Position) (CommandResponse, error) {
		p, err := h.grid.Plant(ctx, pos)
		if err != nil {
			return CommandResponse{}, err
		}
		view := p.View()
		return CommandResponse{Plant: &view}, nil
	})
}

// HandleHarvest harvests a fully grown plant
func (h *GridHandler) HandleHarvest(w http.ResponseWriter, r *http.Request) {
	h.command(w, r, domain.CommandHarvest, MsgHarvested, func(ctx context.Context, pos domain.Position) (CommandResponse, error) {
		res, err := h.grid.Harvest(ctx, pos)
		if err != nil {
			return CommandResponse{}, err
		}
		return CommandResponse{Reward: &res}, nil
	})
}

// HandleDestroy clears a withered plant
func (h *GridHandler) HandleDestroy(w http.ResponseWriter, r *http.Request) {
	h.command(w, r, domain.CommandDestroy, MsgDestroyed, func(ctx context.Context, pos domain.Position) (CommandResponse, error) {
		return CommandResponse{}, h.grid.Destroy(ctx, pos)
	})
}

// HandleWater waters a plant that is waiting for water
func (h *GridHandler) HandleWater(w http.ResponseWriter, r *http.Request) {
	h.command(w, r, domain.CommandWater, MsgWatered, func(ctx context.Context, pos domain.Position) (CommandResponse, error) {
		if err := h.grid.Water(ctx, pos); err != nil {
			return CommandResponse{}, err
		}
		resp := CommandResponse{}
		if p := h.grid.PlantAt(pos); p != nil {
			view := p.View()
			resp.Plant = &view
		}
		return resp, nil
	})
}

type commandFunc func(ctx context.Context, pos domain.Position) (CommandResponse, error)

func (h *GridHandler) command(w http.ResponseWriter, r *http.Request, name, successMsg string, fn commandFunc) {
	var req CellRequest
	if err := DecodeAndValidateRequest(r, w, &req, name); err != nil {
		return
	}
	pos := req.Position()
	ctx := logger.WithAttrs(r.Context(), LogFieldCommand, name, LogFieldPosition, pos.String())
	log := logger.FromContext(ctx)
	log.Debug(LogMsgCommandReceived)

	var (
		resp CommandResponse
		err  error
	)
	if !h.dispatch(w, r.WithContext(ctx), func() {
		resp, err = fn(ctx, pos)
	}) {
		return
	}
	if err != nil {
		log.Info(LogMsgCommandRejected, LogFieldError, err)
		respondRejected(w, err)
		return
	}

	log.Info(LogMsgCommandSucceeded)
	resp.Success = true
	resp.Message = successMsg
	respondJSON(w, http.StatusOK, resp)
}

// dispatch runs fn on the update loop. It reports false after writing a 503
// when the loop cannot be reached.
func (h *GridHandler) dispatch(w http.ResponseWriter, r *http.Request, fn func()) bool {
	if err := h.dispatcher.Do(r.Context(), fn); err != nil {
		logger.FromContext(r.Context()).Warn(LogMsgDispatchFailed, LogFieldError, err)
		respondError(w, http.StatusServiceUnavailable, ErrMsgUnavailableError)
		return false
	}
	return true
}

func positionFromQuery(r *http.Request, w http.ResponseWriter) (domain.Position, bool) {
	x, ok := GetIntQueryParam(r, w, QueryParamX)
	if !ok {
		return domain.Position{}, false
	}
	y, ok := GetIntQueryParam(r, w, QueryParamY)
	if !ok {
		return domain.Position{}, false
	}
	return domain.Pos(x, y), true
}
