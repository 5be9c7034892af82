package constants

const (
	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimestampFormat is used for creation and update timestamps
	TimestampFormat = "2006-01-02T15:04:05.000Z07:00"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// TrailingWindowDays is the size of the "this week" window used by stats
	TrailingWindowDays = 7
)
