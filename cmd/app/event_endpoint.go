package main

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/beeynow/ADUSTECH/internal/middleware"
	"github.com/beeynow/ADUSTECH/internal/model"
	"github.com/beeynow/ADUSTECH/internal/services"
)

type createEventRequest struct {
	Title       string    `json:"title"`
	Details     string    `json:"details"`
	Location    string    `json:"location"`
	ImageBase64 string    `json:"imageBase64"`
	StartsAt    time.Time `json:"startsAt"`
}

func createEventHandler(eventSvc *services.EventService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(createEventRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "valid startsAt is required"})
		}
		su := middleware.CurrentUser(c)
		userID, err := sessionID(su)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid session"})
		}
		e, err := eventSvc.Create(c.Request().Context(), userID, su.Name,
			req.Title, req.Details, req.Location, req.ImageBase64, req.StartsAt)
		if err != nil {
			return httpError(c, err, "error creating event")
		}
		return c.JSON(http.StatusCreated, echo.Map{"message": "event created", "event": e})
	}
}

func listEventsHandler(eventSvc *services.EventService) echo.HandlerFunc {
	return func(c echo.Context) error {
		events, err := eventSvc.List(c.Request().Context())
		if err != nil {
			return httpError(c, err, "error listing events")
		}
		return c.JSON(http.StatusOK, echo.Map{"events": events})
	}
}

func getEventHandler(eventSvc *services.EventService) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := paramObjectID(c, "id")
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
		}
		e, err := eventSvc.Get(c.Request().Context(), id)
		if err != nil {
			return httpError(c, err, "error fetching event")
		}
		return c.JSON(http.StatusOK, echo.Map{"event": e})
	}
}

func registerEventRoutes(g *echo.Group, eventSvc *services.EventService) {
	g.GET("/events", listEventsHandler(eventSvc))
	g.GET("/events/:id", getEventHandler(eventSvc))

	// only admin roles may announce events
	create := g.Group("/events")
	create.Use(middleware.RequireRoles(model.RolePower, model.RoleAdmin, model.RoleDAdmin))
	create.POST("", createEventHandler(eventSvc))
}
