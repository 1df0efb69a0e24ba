package config

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via dotfile.
// NOTE: Values in config files override defaults, including explicit zero values.
// Missing keys are left at their default values.
type Config struct {
	Picker    PickerConfig    `json:"picker" yaml:"picker"`
	Tokenizer TokenizerConfig `json:"tokenizer" yaml:"tokenizer"`
	Log       LogConfig       `json:"log" yaml:"log"`
	UI        UIConfig        `json:"ui" yaml:"ui"`
}

type PickerConfig struct {
	MinifyCode         bool     `json:"minify_code" yaml:"minify_code"`                 // Default: false
	ExcludeDirectories []string `json:"exclude_directories" yaml:"exclude_directories"` // Default: .git, node_modules
	ExcludeFileTypes   []string `json:"exclude_file_types" yaml:"exclude_file_types"`   // Default: common binary/media extensions
	RespectGitignore   bool     `json:"respect_gitignore" yaml:"respect_gitignore"`     // Default: false

	// Refresh
	RefreshDelayMs  int  `json:"refresh_delay_ms" yaml:"refresh_delay_ms"` // Default: 500
	WatchFilesystem bool `json:"watch_filesystem" yaml:"watch_filesystem"` // Default: false

	// Bulk operations
	MaxConcurrentReads int `json:"max_concurrent_reads" yaml:"max_concurrent_reads"` // Default: 8
}

type TokenizerConfig struct {
	Backend     string `json:"backend" yaml:"backend"`           // Default: tiktoken
	Model       string `json:"model" yaml:"model"`               // Default: gpt-4
	GeminiModel string `json:"gemini_model" yaml:"gemini_model"` // Default: gemini-2.0-flash
}

type LogConfig struct {
	Level  string `json:"level" yaml:"level"`   // Default: info
	Format string `json:"format" yaml:"format"` // Default: json
	Path   string `json:"path" yaml:"path"`     // Default: ~/.config/ctxprompt/ctxprompt.log
}

type UIConfig struct {
	PreviewWidth int  `json:"preview_width" yaml:"preview_width"` // Default: 100
	ShowHidden   bool `json:"show_hidden" yaml:"show_hidden"`     // Default: true
}

// DefaultExcludeFileTypes are skipped unless the user overrides the list.
var DefaultExcludeFileTypes = []string{
	".jpg", ".jpeg", ".png", ".gif", ".bmp", ".svg", // Images
	".mp4", ".avi", ".mov", ".wmv", // Videos
	".mp3", ".wav", ".ogg", // Audio
	".pdf", ".doc", ".docx", ".xls", ".xlsx", // Documents
	".zip", ".rar", ".tar", ".gz", // Archives
	".exe", ".dll", ".so", // Binaries
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Picker: PickerConfig{
			MinifyCode:         false,
			ExcludeDirectories: []string{".git", "node_modules"},
			ExcludeFileTypes:   append([]string(nil), DefaultExcludeFileTypes...),
			RespectGitignore:   false,
			RefreshDelayMs:     500,
			WatchFilesystem:    false,
			MaxConcurrentReads: 8,
		},
		Tokenizer: TokenizerConfig{
			Backend:     "tiktoken",
			Model:       "gpt-4",
			GeminiModel: "gemini-2.0-flash",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		UI: UIConfig{
			PreviewWidth: 100,
			ShowHidden:   true,
		},
	}
}
