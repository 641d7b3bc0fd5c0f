package config

// RawConfig mirrors Config with pointer fields so unset keys keep defaults.
type RawConfig struct {
	Display        *string             `yaml:"display"`
	DefaultFormat  *string             `yaml:"default_format"`
	Swatch         *string             `yaml:"swatch"`
	TimeoutSeconds *int                `yaml:"timeout_seconds"`
	LogLevel       *string             `yaml:"log_level"`
	Notify         *bool               `yaml:"notify"`
	Hotkey         *string             `yaml:"hotkey"`
	Clipboard      *RawClipboardConfig `yaml:"clipboard"`
}

type RawClipboardConfig struct {
	Enabled *bool   `yaml:"enabled"`
	Backend *string `yaml:"backend"`
	Command *string `yaml:"command"`
}
