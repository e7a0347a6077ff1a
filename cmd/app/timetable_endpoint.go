package main

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/beeynow/ADUSTECH/internal/middleware"
	"github.com/beeynow/ADUSTECH/internal/model"
	"github.com/beeynow/ADUSTECH/internal/services"
)

type createTimetableRequest struct {
	Title         string    `json:"title"`
	Details       string    `json:"details"`
	ImageBase64   string    `json:"imageBase64"`
	PDFBase64     string    `json:"pdfBase64"`
	EffectiveDate time.Time `json:"effectiveDate"`
}

func createTimetableHandler(timetableSvc *services.TimetableService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(createTimetableRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "valid effectiveDate is required"})
		}
		su := middleware.CurrentUser(c)
		userID, err := sessionID(su)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid session"})
		}
		t, err := timetableSvc.Create(c.Request().Context(), userID, su.Name,
			req.Title, req.Details, req.ImageBase64, req.PDFBase64, req.EffectiveDate)
		if err != nil {
			return httpError(c, err, "error creating timetable")
		}
		return c.JSON(http.StatusCreated, echo.Map{"message": "timetable created", "timetable": t})
	}
}

func listTimetablesHandler(timetableSvc *services.TimetableService) echo.HandlerFunc {
	return func(c echo.Context) error {
		timetables, err := timetableSvc.List(c.Request().Context())
		if err != nil {
			return httpError(c, err, "error listing timetables")
		}
		return c.JSON(http.StatusOK, echo.Map{"timetables": timetables})
	}
}

func getTimetableHandler(timetableSvc *services.TimetableService) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := paramObjectID(c, "id")
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
		}
		t, err := timetableSvc.Get(c.Request().Context(), id)
		if err != nil {
			return httpError(c, err, "error fetching timetable")
		}
		return c.JSON(http.StatusOK, echo.Map{"timetable": t})
	}
}

func registerTimetableRoutes(g *echo.Group, timetableSvc *services.TimetableService) {
	g.GET("/timetables", listTimetablesHandler(timetableSvc))
	g.GET("/timetables/:id", getTimetableHandler(timetableSvc))

	create := g.Group("/timetables")
	create.Use(middleware.RequireRoles(model.RolePower, model.RoleAdmin, model.RoleDAdmin))
	create.POST("", createTimetableHandler(timetableSvc))
}
