package entity

import "errors"

var (
	// Campaign errors
	ErrConfigMissing     = errors.New("campaign config not found")
	ErrCampaignStructure = errors.New("campaign directory layout is invalid")
	ErrCampaignNotFound  = errors.New("campaign not found")
	ErrBackgroundMissing = errors.New("background image not found")

	// Config parsing errors
	ErrMalformedMapping  = errors.New("malformed color mapping")
	ErrMalformedPosition = errors.New("malformed position ratio")
	ErrMalformedNumber   = errors.New("malformed numeric value")
	ErrMalformedColor    = errors.New("malformed color")

	// Rendering errors
	ErrFontUnavailable = errors.New("font unavailable")
	ErrDecodeFailure   = errors.New("image decode failed")
	ErrEncodeFailure   = errors.New("image encode failed")

	// Job errors
	ErrJobNotFound  = errors.New("render job not found")
	ErrInvalidInput = errors.New("invalid input")
)
