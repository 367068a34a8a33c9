package domain

// Time format constants
const (
	DateFormat      = "2006-01-02" // YYYY-MM-DD
	TimeOfDayFormat = "15:04:05"   // HH:MM:SS (Postgres TIME columns)
	TimeShortFormat = "15:04"      // HH:MM
)

// DefaultTimezone используется, если scheduling.timezone не задан в конфигурации
const DefaultTimezone = "UTC"
