package services

import "errors"

// Sentinel errors shared across services. Endpoints translate these to HTTP
// statuses in one place; anything unrecognized is a dependency fault (500).
var (
	// Validation
	ErrMissingFields  = errors.New("all fields are required")
	ErrTextRequired   = errors.New("text required")
	ErrTextTooLong    = errors.New("text too long (max 2000 chars)")
	ErrEmptyPost      = errors.New("provide text or image")
	ErrInvalidImage   = errors.New("invalid image format. use png/jpeg/webp base64 data url")
	ErrInvalidPDF     = errors.New("invalid pdf format")
	ErrImageTooLarge  = errors.New("image too large (max 10mb)")
	ErrNameRequired   = errors.New("name is required")
	ErrTitleRequired  = errors.New("title is required")
	ErrInvalidDate    = errors.New("valid date is required")
	ErrNoImage        = errors.New("no image provided")
	ErrInvalidRole    = errors.New("role must be admin or d-admin")
	ErrInvalidEmail   = errors.New("invalid email format")
	ErrWeakPassword   = errors.New("password too short: must be at least 6 characters")
	ErrInvalidGender  = errors.New("gender must be Male, Female or Other")

	// Authentication
	ErrUserNotFound      = errors.New("user not found")
	ErrIncorrectPassword = errors.New("incorrect password")
	ErrEmailNotVerified  = errors.New("email not verified. please verify otp")
	ErrInvalidOTP        = errors.New("invalid or expired otp")
	ErrInvalidResetCode  = errors.New("invalid or expired reset code")
	ErrInvalidReset      = errors.New("invalid reset request")

	// Conflict
	ErrUserExists      = errors.New("user already exists")
	ErrAlreadyVerified = errors.New("user already verified")
	ErrRoleAssigned    = errors.New("email already holds an administrative role")
	ErrAlreadyUser     = errors.New("account already has role user")
	ErrDemotePower     = errors.New("the power admin cannot be demoted")

	// Authorization
	ErrNotChannelMember = errors.New("you are not a member of this channel")

	// Not found
	ErrPostNotFound      = errors.New("post not found")
	ErrCommentNotFound   = errors.New("comment not found")
	ErrChannelNotFound   = errors.New("channel not found")
	ErrEventNotFound     = errors.New("event not found")
	ErrTimetableNotFound = errors.New("timetable not found")
)
