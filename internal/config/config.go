package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	AppName               = "taskpad"
	DefaultConfigFileName = "config.toml"
	DefaultStateName      = "state.db"
	DefaultLogName        = "taskpad.log"
	DefaultAPIURL         = "http://127.0.0.1:5000"

	// EnvAPIURL overrides api_url from the file.
	EnvAPIURL = "TASKPAD_API_URL"
)

type Keymap struct {
	Quit       string `toml:"quit"`
	Add        string `toml:"add"`
	Up         string `toml:"up"`
	Down       string `toml:"down"`
	Toggle     string `toml:"toggle"`
	Delete     string `toml:"delete"`
	Edit       string `toml:"edit"`
	Confirm    string `toml:"confirm"`
	Cancel     string `toml:"cancel"`
	Filter     string `toml:"filter"`
	Theme      string `toml:"theme"`
	DarkMode   string `toml:"dark_mode"`
	Refresh    string `toml:"refresh"`
	Logout     string `toml:"logout"`
	Login      string `toml:"login"`
	Signup     string `toml:"signup"`
	Forgot     string `toml:"forgot_password"`
	ShowSecret string `toml:"show_password"`
}

type Config struct {
	APIURL         string `toml:"api_url"`
	StatePath      string `toml:"state_path"`
	LogPath        string `toml:"log_path"`
	DefaultFilter  string `toml:"default_filter"`
	RequestTimeout int    `toml:"request_timeout"`
	Keys           Keymap `toml:"keys"`
}

// ResolveConfigPath returns $XDG_CONFIG_HOME/taskpad/config.toml, falling
// back to ~/.config/taskpad/config.toml.
func ResolveConfigPath() string {
	return filepath.Join(DefaultConfigDir(), DefaultConfigFileName)
}

func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// LoadOrCreate reads the config at path, writing the defaults there first if
// the file does not exist. Relative state and log paths are resolved against
// the config's directory.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg.resolve(filepath.Dir(path)), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg.resolve(filepath.Dir(path)), nil
}

func (c Config) resolve(dir string) Config {
	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		c.APIURL = v
	}
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	if c.StatePath == "" {
		c.StatePath = DefaultStateName
	}
	if c.LogPath == "" {
		c.LogPath = DefaultLogName
	}
	if !filepath.IsAbs(c.StatePath) && !strings.HasPrefix(c.StatePath, "file:") {
		c.StatePath = filepath.Join(dir, c.StatePath)
	}
	if !filepath.IsAbs(c.LogPath) {
		c.LogPath = filepath.Join(dir, c.LogPath)
	}
	if c.RequestTimeout < 0 {
		c.RequestTimeout = 0
	}
	c.Keys = c.Keys.withDefaults(defaultConfig().Keys)
	return c
}

// withDefaults fills keys left empty in the file.
func (k Keymap) withDefaults(d Keymap) Keymap {
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&k.Quit, d.Quit)
	fill(&k.Add, d.Add)
	fill(&k.Up, d.Up)
	fill(&k.Down, d.Down)
	fill(&k.Toggle, d.Toggle)
	fill(&k.Delete, d.Delete)
	fill(&k.Edit, d.Edit)
	fill(&k.Confirm, d.Confirm)
	fill(&k.Cancel, d.Cancel)
	fill(&k.Filter, d.Filter)
	fill(&k.Theme, d.Theme)
	fill(&k.DarkMode, d.DarkMode)
	fill(&k.Refresh, d.Refresh)
	fill(&k.Logout, d.Logout)
	fill(&k.Login, d.Login)
	fill(&k.Signup, d.Signup)
	fill(&k.Forgot, d.Forgot)
	fill(&k.ShowSecret, d.ShowSecret)
	return k
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func Default() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		APIURL:         DefaultAPIURL,
		StatePath:      DefaultStateName,
		LogPath:        DefaultLogName,
		DefaultFilter:  "all",
		RequestTimeout: 0,
		Keys: Keymap{
			Quit:       "q",
			Add:        "a",
			Up:         "k",
			Down:       "j",
			Toggle:     " ",
			Delete:     "d",
			Edit:       "e",
			Confirm:    "enter",
			Cancel:     "esc",
			Filter:     "f",
			Theme:      "t",
			DarkMode:   "D",
			Refresh:    "r",
			Logout:     "L",
			Login:      "l",
			Signup:     "s",
			Forgot:     "p",
			ShowSecret: "ctrl+r",
		},
	}
}
