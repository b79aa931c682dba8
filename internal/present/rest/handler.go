package rest

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/labstack/echo/v4"
	"github.com/zeebo/xxh3"

	"nostrcal"
	"nostrcal/geo"
	"nostrcal/internal/config"
	"nostrcal/internal/domain"
	"nostrcal/internal/present/rest/presenter"
	"nostrcal/internal/usecase"
	"nostrcal/recur"
)

type Handler struct {
	config   config.Config
	calendar *usecase.CalendarUsecase
	mc       *memcache.Client
}

func NewHandler(
	config config.Config,
	calendar *usecase.CalendarUsecase,
	mc *memcache.Client,
) *Handler {
	return &Handler{
		config:   config,
		calendar: calendar,
		mc:       mc,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.handleHealth)
	e.GET("/calendar/events", h.handleEvents)
	e.GET("/calendar/events/:coordinate", h.handleEvent)
	e.GET("/calendar/events/:coordinate/rsvps", h.handleRSVPs)
	e.GET("/calendar/feed.ics", h.handleFeed)
	e.POST("/calendar/plan", h.handlePlan)
}

func (h *Handler) handleHealth(c echo.Context) error {
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handleEvents(c echo.Context) error {
	ctx := c.Request().Context()

	filter, err := queryFilter(c)
	if err != nil {
		return presenter.BadRequest(c, err)
	}

	events, err := h.calendar.ListEvents(ctx, filter)
	if err != nil {
		return presenter.InternalError(c, err)
	}

	if zone := h.config.View.DefaultTimezone; zone != "" {
		for i := range events {
			if !events[i].Start.IsDate() && events[i].Start.Zone == "" {
				events[i].Start.Zone = zone
			}
		}
	}

	latStr := c.QueryParam("lat")
	lngStr := c.QueryParam("lng")
	if latStr != "" && lngStr != "" {
		lat, errLat := strconv.ParseFloat(latStr, 64)
		lng, errLng := strconv.ParseFloat(lngStr, 64)
		if errLat != nil || errLng != nil {
			return presenter.BadRequestMessage(c, "invalid lat/lng parameter")
		}
		events = h.calendar.SortByDistance(events, geo.Point{Lat: lat, Lng: lng})
	}

	return presenter.OK(c, events)
}

func (h *Handler) handleEvent(c echo.Context) error {
	ctx := c.Request().Context()

	coord, err := coordinateParam(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid coordinate")
	}

	event, err := h.calendar.GetEvent(ctx, coord)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return presenter.NotFound(c, "event not found")
		}
		return presenter.InternalError(c, err)
	}

	return presenter.OK(c, event)
}

func (h *Handler) handleRSVPs(c echo.Context) error {
	ctx := c.Request().Context()

	coord, err := coordinateParam(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid coordinate")
	}

	event, err := h.calendar.GetEvent(ctx, coord)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return presenter.NotFound(c, "event not found")
		}
		return presenter.InternalError(c, err)
	}

	rsvps, err := h.calendar.ListRSVPs(ctx, event)
	if err != nil {
		return presenter.InternalError(c, err)
	}

	return presenter.OK(c, rsvps)
}

func (h *Handler) handleFeed(c echo.Context) error {
	ctx := c.Request().Context()

	filter, err := queryFilter(c)
	if err != nil {
		return presenter.BadRequest(c, err)
	}

	key := fmt.Sprintf("feed:%016x", xxh3.HashString(c.QueryString()))
	if h.mc != nil {
		if item, err := h.mc.Get(key); err == nil {
			return c.Blob(http.StatusOK, "text/calendar", item.Value)
		}
	}

	events, err := h.calendar.ListEvents(ctx, filter)
	if err != nil {
		return presenter.InternalError(c, err)
	}

	feed := BuildFeed(events)

	if h.mc != nil {
		h.mc.Set(&memcache.Item{
			Key:        key,
			Value:      []byte(feed),
			Expiration: h.config.View.FeedCacheSeconds,
		})
	}

	return c.Blob(http.StatusOK, "text/calendar", []byte(feed))
}

type planRequest struct {
	Draft usecase.Draft `json:"draft"`
	Rule  recur.Rule    `json:"rule"`
}

type plannedDraft struct {
	Draft usecase.Draft  `json:"draft"`
	Tags  []nostrcal.Tag `json:"tags"`
}

func (h *Handler) handlePlan(c echo.Context) error {
	var req planRequest
	err := c.Bind(&req)
	if err != nil {
		return presenter.BadRequest(c, err)
	}

	if problems := recur.Validate(req.Rule); req.Rule.Enabled && len(problems) > 0 {
		return presenter.BadRequest(c, errors.Join(problems...))
	}

	drafts, err := h.calendar.PlanOccurrences(req.Draft, req.Rule)
	if err != nil {
		return presenter.BadRequest(c, err)
	}

	planned := make([]plannedDraft, 0, len(drafts))
	for _, d := range drafts {
		planned = append(planned, plannedDraft{
			Draft: d,
			Tags:  h.calendar.BuildTags(d),
		})
	}

	return presenter.OK(c, planned)
}

func coordinateParam(c echo.Context) (nostrcal.Coordinate, error) {
	escaped := c.Param("coordinate")
	raw, err := url.QueryUnescape(escaped)
	if err != nil {
		return nostrcal.Coordinate{}, err
	}
	return nostrcal.ParseCoordinate(raw)
}

func queryFilter(c echo.Context) (nostrcal.Filter, error) {
	var filter nostrcal.Filter

	if author := c.QueryParam("author"); author != "" {
		filter.Authors = []string{author}
	}

	if sinceStr := c.QueryParam("since"); sinceStr != "" {
		since, err := strconv.ParseInt(sinceStr, 10, 64)
		if err != nil {
			return filter, fmt.Errorf("invalid since parameter")
		}
		filter.Since = &since
	}

	if untilStr := c.QueryParam("until"); untilStr != "" {
		until, err := strconv.ParseInt(untilStr, 10, 64)
		if err != nil {
			return filter, fmt.Errorf("invalid until parameter")
		}
		filter.Until = &until
	}

	limit := 0
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		limitInt, err := strconv.Atoi(limitStr)
		if err != nil {
			return filter, fmt.Errorf("invalid limit parameter")
		}
		limit = limitInt
	}
	if limit > 500 {
		limit = 500
	}
	filter.Limit = limit

	return filter, nil
}
