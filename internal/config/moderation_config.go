package config

import "time"

const (
	// Points assigned per disposition severity
	PointsImmediateHarm = 8
	PointsModerateHarm  = 5
	PointsLowHarm       = 2

	// Ban
	BanThresholdPoints = 50

	// Reports
	ReportIdleExpiry = 30 * time.Minute

	// Admin API
	AdminTokenTTL = 72 * time.Hour
)

// FlagEmoji is attached to messages judged Moderate Harm.
const FlagEmoji = "🚩"
