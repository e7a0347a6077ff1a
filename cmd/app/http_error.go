package main

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/beeynow/ADUSTECH/internal/services"
)

var notFoundErrors = []error{
	services.ErrPostNotFound,
	services.ErrCommentNotFound,
	services.ErrChannelNotFound,
	services.ErrEventNotFound,
	services.ErrTimetableNotFound,
}

var badRequestErrors = []error{
	services.ErrMissingFields,
	services.ErrTextRequired,
	services.ErrTextTooLong,
	services.ErrEmptyPost,
	services.ErrInvalidImage,
	services.ErrInvalidPDF,
	services.ErrImageTooLarge,
	services.ErrNameRequired,
	services.ErrTitleRequired,
	services.ErrInvalidDate,
	services.ErrNoImage,
	services.ErrInvalidRole,
	services.ErrInvalidEmail,
	services.ErrWeakPassword,
	services.ErrInvalidGender,
	services.ErrUserNotFound,
	services.ErrIncorrectPassword,
	services.ErrEmailNotVerified,
	services.ErrInvalidOTP,
	services.ErrInvalidResetCode,
	services.ErrInvalidReset,
	services.ErrUserExists,
	services.ErrAlreadyVerified,
	services.ErrRoleAssigned,
	services.ErrAlreadyUser,
	services.ErrDemotePower,
}

func isOneOf(err error, set []error) bool {
	for _, e := range set {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// httpError translates service errors to the JSON {message} body. Anything
// outside the taxonomy is a dependency fault and reports the fallback
// message with diagnostics.
func httpError(c echo.Context, err error, fallback string) error {
	switch {
	case isOneOf(err, notFoundErrors):
		return c.JSON(http.StatusNotFound, echo.Map{"message": err.Error()})
	case errors.Is(err, services.ErrNotChannelMember):
		return c.JSON(http.StatusForbidden, echo.Map{"message": err.Error()})
	case isOneOf(err, badRequestErrors):
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": fallback, "error": err.Error()})
	}
}
