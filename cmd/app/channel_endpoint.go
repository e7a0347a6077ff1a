package main

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/beeynow/ADUSTECH/internal/middleware"
	"github.com/beeynow/ADUSTECH/internal/services"
)

type createChannelRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Visibility  string `json:"visibility"`
}

func listChannelsHandler(channelSvc *services.ChannelService) echo.HandlerFunc {
	return func(c echo.Context) error {
		su := middleware.CurrentUser(c)
		userID, err := sessionID(su)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid session"})
		}
		channels, err := channelSvc.List(c.Request().Context(), userID)
		if err != nil {
			return httpError(c, err, "error listing channels")
		}
		return c.JSON(http.StatusOK, echo.Map{"channels": channels})
	}
}

func createChannelHandler(channelSvc *services.ChannelService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(createChannelRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
		}
		su := middleware.CurrentUser(c)
		userID, err := sessionID(su)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid session"})
		}
		ch, created, err := channelSvc.Create(c.Request().Context(), userID, req.Name, req.Description, req.Visibility)
		if err != nil {
			return httpError(c, err, "error creating channel")
		}
		if !created {
			return c.JSON(http.StatusOK, echo.Map{
				"channel": ch,
				"message": "channel already existed. you have been added",
			})
		}
		return c.JSON(http.StatusCreated, echo.Map{"channel": ch, "message": "channel created"})
	}
}

func getChannelHandler(channelSvc *services.ChannelService) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := paramObjectID(c, "id")
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
		}
		su := middleware.CurrentUser(c)
		userID, err := sessionID(su)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid session"})
		}
		ch, err := channelSvc.Get(c.Request().Context(), id, userID)
		if err != nil {
			return httpError(c, err, "error fetching channel")
		}
		return c.JSON(http.StatusOK, echo.Map{"channel": ch})
	}
}

func registerChannelRoutes(g *echo.Group, channelSvc *services.ChannelService) {
	channels := g.Group("/channels")
	channels.Use(middleware.RequireSession)

	channels.GET("", listChannelsHandler(channelSvc))
	channels.POST("", createChannelHandler(channelSvc))
	channels.GET("/:id", getChannelHandler(channelSvc))
}
