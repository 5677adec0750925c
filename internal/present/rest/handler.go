package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/rice-crc/daastapi/internal/domain"
	"github.com/rice-crc/daastapi/internal/present/rest/presenter"
	"github.com/rice-crc/daastapi/internal/service"
	"github.com/rice-crc/daastapi/internal/usecase"
)

// EntityTypeLister exposes the configured entity type catalog.
type EntityTypeLister interface {
	ListTypes(ctx context.Context) ([]domain.EntityType, error)
}

type Handler struct {
	search   *usecase.SearchUsecase
	manifest *usecase.ManifestUsecase
	types    EntityTypeLister
	signal   *service.SignalService
}

func NewHandler(
	search *usecase.SearchUsecase,
	manifest *usecase.ManifestUsecase,
	types EntityTypeLister,
	signal *service.SignalService,
) *Handler {
	return &Handler{
		search:   search,
		manifest: manifest,
		types:    types,
		signal:   signal,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/search", h.handleSearch)
	e.GET("/api/v1/entity-types", h.handleEntityTypes)
	e.GET("/manifests/:key", h.handleManifest)
	e.GET("/manifests/:key/:rev", h.handleManifest)
	e.GET("/realtime", h.handleRealtime)
}

func (h *Handler) handleSearch(c echo.Context) error {
	ctx := c.Request().Context()

	var req domain.SearchRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	result, err := h.search.Search(ctx, req.Query())
	if err != nil {
		return presenter.InternalError(c, err)
	}
	return presenter.OK(c, result)
}

func (h *Handler) handleEntityTypes(c echo.Context) error {
	ctx := c.Request().Context()

	types, err := h.types.ListTypes(ctx)
	if err != nil {
		return presenter.InternalError(c, err)
	}
	return presenter.OK(c, types)
}

func (h *Handler) handleManifest(c echo.Context) error {
	ctx := c.Request().Context()

	key := c.Param("key")
	var revisionNumber *int
	if raw := c.Param("rev"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return presenter.BadRequestMessage(c, "invalid revision number")
		}
		revisionNumber = &parsed
	}

	location, err := h.manifest.Resolve(ctx, key, revisionNumber)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return presenter.NotFound(c, "manifest not found")
		}
		return presenter.InternalError(c, err)
	}
	return c.Redirect(http.StatusFound, location)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type realtimeRequest struct {
	Type     string   `json:"type"`
	Prefixes []string `json:"prefixes"`
}

// handleRealtime streams catalog lifecycle events to a websocket client,
// filtered by the document key prefixes the client subscribes to.
func (h *Handler) handleRealtime(c echo.Context) error {
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error(
			"Failed to upgrade WebSocket",
			slog.String("error", err.Error()),
			slog.String("module", "socket"),
		)
		return err
	}
	defer func() {
		ws.Close()
	}()

	ctx := c.Request().Context()

	input := make(chan []string)
	defer close(input)
	output := make(chan domain.Event)

	go h.signal.Realtime(ctx, input, output)

	quit := make(chan struct{})

	go func() {
		for {
			var req realtimeRequest
			err := ws.ReadJSON(&req)
			if err != nil {
				wsErr, ok := err.(*websocket.CloseError)
				if ok {
					if !(wsErr.Code == websocket.CloseNormalClosure || wsErr.Code == websocket.CloseGoingAway) {
						slog.DebugContext(
							ctx, "WebSocket closed",
							slog.String("error", wsErr.Error()),
							slog.String("module", "socket"),
						)
					}
				} else {
					slog.ErrorContext(
						ctx, "Error reading message",
						slog.String("error", err.Error()),
						slog.String("module", "socket"),
					)
				}

				quit <- struct{}{}
				break
			}

			switch req.Type {
			case "listen":
				input <- req.Prefixes
			case "h": // heartbeat
				// do nothing
			default:
				slog.InfoContext(
					ctx, "Unknown request type",
					slog.String("type", req.Type),
					slog.String("module", "socket"),
				)
			}
		}
	}()

	for {
		select {
		case <-quit:
			return nil
		case event := <-output:
			err := ws.WriteJSON(event)
			if err != nil {
				slog.ErrorContext(
					ctx, "Error writing message",
					slog.String("error", err.Error()),
					slog.String("module", "socket"),
				)
				return nil
			}
		}
	}
}
