package models

// Settings represents application-wide settings
type Settings struct {
	StrictOverlap bool   `yaml:"strict_overlap" json:"strict_overlap"` // reject blocks that overlap existing ones
	Storage       string `yaml:"storage" json:"storage"`               // SQLite path, .json path or postgres:// URL
	Listen        string `yaml:"listen" json:"listen"`                 // HTTP listen address for serve
	Timezone      string `yaml:"timezone" json:"timezone"`             // IANA name or "Local"; decides what "today" is
	BreakMinutes  int    `yaml:"break_minutes" json:"break_minutes"`   // default break length
	Debug         bool   `yaml:"debug" json:"debug"`
}
