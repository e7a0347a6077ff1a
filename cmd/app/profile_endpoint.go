package main

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/beeynow/ADUSTECH/internal/middleware"
	"github.com/beeynow/ADUSTECH/internal/model"
	"github.com/beeynow/ADUSTECH/internal/services"
)

type uploadImageRequest struct {
	ImageBase64 string `json:"imageBase64"`
}

func getProfileHandler(profileSvc *services.ProfileService) echo.HandlerFunc {
	return func(c echo.Context) error {
		su := middleware.CurrentUser(c)
		id, err := sessionID(su)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid session"})
		}
		u, err := profileSvc.Get(c.Request().Context(), id)
		if err != nil {
			return httpError(c, err, "error fetching profile")
		}
		return c.JSON(http.StatusOK, echo.Map{
			"message": "profile retrieved successfully",
			"user":    u,
		})
	}
}

func updateProfileHandler(profileSvc *services.ProfileService) echo.HandlerFunc {
	return func(c echo.Context) error {
		upd := new(model.ProfileUpdate)
		if err := c.Bind(upd); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
		}
		su := middleware.CurrentUser(c)
		id, err := sessionID(su)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid session"})
		}
		u, err := profileSvc.Update(c.Request().Context(), id, *upd)
		if err != nil {
			return httpError(c, err, "error updating profile")
		}
		// keep the session's display name in sync
		_ = middleware.RefreshSessionName(c, u.Name)
		return c.JSON(http.StatusOK, echo.Map{
			"message": "profile updated successfully",
			"user":    u,
		})
	}
}

func uploadProfileImageHandler(profileSvc *services.ProfileService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(uploadImageRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
		}
		su := middleware.CurrentUser(c)
		id, err := sessionID(su)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid session"})
		}
		url, err := profileSvc.UploadImage(c.Request().Context(), id, req.ImageBase64)
		if err != nil {
			return httpError(c, err, "error uploading image")
		}
		return c.JSON(http.StatusOK, echo.Map{
			"message":      "profile image uploaded successfully",
			"profileImage": url,
		})
	}
}

func registerProfileRoutes(g *echo.Group, profileSvc *services.ProfileService) {
	profile := g.Group("/profile")
	profile.Use(middleware.RequireSession)

	profile.GET("", getProfileHandler(profileSvc))
	profile.PUT("", updateProfileHandler(profileSvc))
	profile.POST("/image", uploadProfileImageHandler(profileSvc))
}
