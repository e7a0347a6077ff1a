package main

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/beeynow/ADUSTECH/internal/middleware"
	"github.com/beeynow/ADUSTECH/internal/model"
	"github.com/beeynow/ADUSTECH/internal/services"
)

type createAdminRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"` // admin | d-admin
}

func createAdminHandler(adminSvc *services.AdminService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(createAdminRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
		}
		u, err := adminSvc.CreateAdmin(c.Request().Context(), req.Email, req.Name, req.Password, model.Role(req.Role))
		if err != nil {
			return httpError(c, err, "error creating admin")
		}
		return c.JSON(http.StatusCreated, echo.Map{
			"message": "admin role assigned",
			"admin":   u.Public(),
		})
	}
}

func demoteAdminHandler(adminSvc *services.AdminService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(emailRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
		}
		u, err := adminSvc.DemoteAdmin(c.Request().Context(), req.Email)
		if err != nil {
			return httpError(c, err, "error demoting admin")
		}
		return c.JSON(http.StatusOK, echo.Map{
			"message": "admin demoted to user",
			"user":    u.Public(),
		})
	}
}

func listAdminsHandler(adminSvc *services.AdminService) echo.HandlerFunc {
	return func(c echo.Context) error {
		admins, err := adminSvc.ListAdmins(c.Request().Context())
		if err != nil {
			return httpError(c, err, "error listing admins")
		}
		return c.JSON(http.StatusOK, echo.Map{"admins": admins})
	}
}

// registerAdminRoutes mounts the power-only role administration workflow.
func registerAdminRoutes(auth *echo.Group, adminSvc *services.AdminService) {
	admin := auth.Group("/admin")
	admin.Use(middleware.RequireRoles(model.RolePower))

	admin.POST("/create-admin", createAdminHandler(adminSvc))
	admin.POST("/demote-admin", demoteAdminHandler(adminSvc))
	admin.GET("/admins", listAdminsHandler(adminSvc))
}
