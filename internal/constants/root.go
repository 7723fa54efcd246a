package constants

const (
	AppName             = "timetable"
	DefaultKeyringUser  = "database-connection"
	DefaultConfigPath   = "~/.config/timetable/timetable.db"
	DefaultSettingsPath = "~/.config/timetable/config.yaml"
	Version             = "v0.1.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MinutesPerDay bounds minute-of-day values to [0, LastMinuteOfDay]
	MinutesPerDay   = 24 * 60
	LastMinuteOfDay = MinutesPerDay - 1

	// Activity request bounds
	MinPriority = 1
	MaxPriority = 5
	MinHours    = 1
	MaxHours    = 24

	// DefaultBreakMinutes is the length of a break block when no end time is given
	DefaultBreakMinutes = 120

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "timetable-"
	BackupFileSuffix = ".db"

	// Server constants
	DefaultListenAddr  = "127.0.0.1:8080"
	ServerLockfileName = "timetable-server.lock"

	// EnvDBConnection holds a PostgreSQL connection string when the keyring is unavailable
	EnvDBConnection = "TIMETABLE_DB_CONNECTION"
)
