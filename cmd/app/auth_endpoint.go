package main

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/beeynow/ADUSTECH/internal/middleware"
	"github.com/beeynow/ADUSTECH/internal/services"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// sessionID parses the ObjectID stored in the session snapshot.
func sessionID(su *middleware.SessionUser) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(su.ID)
}

func registerHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(registerRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
		}
		if err := authSvc.Register(c.Request().Context(), req.Name, req.Email, req.Password); err != nil {
			return httpError(c, err, "error registering user")
		}
		return c.JSON(http.StatusCreated, echo.Map{"message": "user registered. please verify otp sent to email"})
	}
}

func verifyOTPHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(verifyOTPRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
		}
		u, err := authSvc.VerifyOTP(c.Request().Context(), req.Email, req.OTP)
		if err != nil {
			return httpError(c, err, "error verifying otp")
		}
		return c.JSON(http.StatusOK, echo.Map{
			"message":    "email verified successfully. you can now log in",
			"isVerified": u.IsVerified,
		})
	}
}

func resendOTPHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(emailRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
		}
		if err := authSvc.ResendOTP(c.Request().Context(), req.Email); err != nil {
			return httpError(c, err, "error resending otp")
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "otp resent successfully"})
	}
}

func loginHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(loginRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
		}
		u, err := authSvc.Login(c.Request().Context(), req.Email, req.Password)
		if err != nil {
			return httpError(c, err, "error logging in")
		}

		// Session snapshot: role changes after this point wait for re-login.
		if err := middleware.EstablishSession(c, middleware.SessionUser{
			ID:    u.ID.Hex(),
			Email: u.Email,
			Name:  u.Name,
			Role:  u.Role,
		}); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "error establishing session"})
		}

		return c.JSON(http.StatusOK, echo.Map{
			"message": "login successful",
			"user":    u.Public(),
		})
	}
}

func logoutHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := middleware.DestroySession(c); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "error logging out"})
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "logged out successfully"})
	}
}

func dashboardHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		su := middleware.CurrentUser(c)
		return c.JSON(http.StatusOK, echo.Map{
			"message": "welcome to the dashboard, " + su.Name,
			"user": echo.Map{
				"id":    su.ID,
				"email": su.Email,
				"name":  su.Name,
				"role":  su.Role,
			},
		})
	}
}

func forgotPasswordHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(emailRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
		}
		if err := authSvc.ForgotPassword(c.Request().Context(), req.Email); err != nil {
			return httpError(c, err, "error initiating password reset")
		}
		// Same body whether or not the account exists.
		return c.JSON(http.StatusOK, echo.Map{"message": "if that email exists, a reset code has been sent"})
	}
}

func resetPasswordHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(resetPasswordRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
		}
		if err := authSvc.ResetPassword(c.Request().Context(), req.Email, req.Token, req.NewPassword); err != nil {
			return httpError(c, err, "error resetting password")
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "password has been reset successfully"})
	}
}

func changePasswordHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(changePasswordRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
		}
		su := middleware.CurrentUser(c)
		id, err := sessionID(su)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid session"})
		}
		if err := authSvc.ChangePassword(c.Request().Context(), id, req.CurrentPassword, req.NewPassword); err != nil {
			return httpError(c, err, "error changing password")
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "password changed successfully"})
	}
}

func registerAuthRoutes(g *echo.Group, authSvc *services.AuthService, adminSvc *services.AdminService) {
	auth := g.Group("/auth")

	// public
	auth.POST("/register", registerHandler(authSvc))
	auth.POST("/verify-otp", verifyOTPHandler(authSvc))
	auth.POST("/resend-otp", resendOTPHandler(authSvc))
	auth.POST("/login", loginHandler(authSvc))
	auth.POST("/logout", logoutHandler())
	auth.POST("/forgot-password", forgotPasswordHandler(authSvc))
	auth.POST("/reset-password", resetPasswordHandler(authSvc))

	// authenticated
	protected := auth.Group("")
	protected.Use(middleware.RequireSession)
	protected.POST("/change-password", changePasswordHandler(authSvc))
	protected.GET("/dashboard", dashboardHandler())

	registerAdminRoutes(auth, adminSvc)
}
