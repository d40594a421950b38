package config

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/handiism/audioconv/internal/codec"
	"github.com/handiism/audioconv/internal/logger"
	"github.com/handiism/audioconv/internal/model"
	"github.com/joho/godotenv"
)

// EnvPrefix starts every environment variable read by ApplyEnv.
const EnvPrefix = "AUDIOCONV_"

// Settings holds all configuration options.
type Settings struct {
	// Output settings
	OutputFormat  string `json:"output_format"`
	OutputDir     string `json:"output_dir"`
	OutputSameDir bool   `json:"output_same_dir"`
	OutputPrefix  string `json:"output_prefix"`
	Overwrite     bool   `json:"overwrite"`

	// Encoder tuning, forwarded verbatim; empty means unset
	Bitrate string `json:"bitrate"`
	Quality string `json:"quality"`
	VBR     string `json:"vbr"`
	NoID3v2 bool   `json:"no_id3v2"`

	// External programs
	Tools ToolPaths `json:"tools"`

	// Logging
	LogLevel      string `json:"log_level"` // debug, info, warn, error
	LogFile       string `json:"log_file"`
	LogMaxSize    int    `json:"log_max_size"`
	LogMaxBackups int    `json:"log_max_backups"`
	LogMaxAge     int    `json:"log_max_age"`
	LogCompress   bool   `json:"log_compress"`
}

// ToolPaths names the external programs. Each entry is a bare name looked
// up in PATH or an absolute path.
type ToolPaths struct {
	Lame          string `json:"lame"`
	Flac          string `json:"flac"`
	OggEnc        string `json:"oggenc"`
	OggDec        string `json:"oggdec"`
	Mac           string `json:"mac"`
	FFmpeg        string `json:"ffmpeg"`
	MetaFlac      string `json:"metaflac"`
	VorbisComment string `json:"vorbiscomment"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	tools := codec.DefaultTools()
	log := logger.DefaultConfig()
	return &Settings{
		OutputSameDir: false,
		Overwrite:     false,

		Tools: ToolPaths{
			Lame:          tools.Lame,
			Flac:          tools.Flac,
			OggEnc:        tools.OggEnc,
			OggDec:        tools.OggDec,
			Mac:           tools.Mac,
			FFmpeg:        tools.FFmpeg,
			MetaFlac:      tools.MetaFlac,
			VorbisComment: tools.VorbisComment,
		},

		LogLevel:      string(log.Level),
		LogMaxSize:    log.MaxSize,
		LogMaxBackups: log.MaxBackups,
		LogMaxAge:     log.MaxAge,
	}
}

// DefaultPath returns the per-user config file location,
// e.g. ~/.config/audioconv/config.json on Linux.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "audioconv.json"
	}
	return filepath.Join(dir, "audioconv", "config.json")
}

// Load reads settings from a JSON file.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ApplyEnv loads envFiles (".env" when none are given) into the process
// environment and overrides settings from AUDIOCONV_* variables.
// Variables already set in the environment win over the files. Missing
// files are ignored.
func (s *Settings) ApplyEnv(envFiles ...string) error {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	s.OutputFormat = getEnv("OUTPUT_FORMAT", s.OutputFormat)
	s.OutputDir = getEnv("OUTPUT_DIR", s.OutputDir)
	s.Bitrate = getEnv("BITRATE", s.Bitrate)
	s.Quality = getEnv("QUALITY", s.Quality)
	s.VBR = getEnv("VBR", s.VBR)

	s.Tools.Lame = getEnv("LAME", s.Tools.Lame)
	s.Tools.Flac = getEnv("FLAC", s.Tools.Flac)
	s.Tools.OggEnc = getEnv("OGGENC", s.Tools.OggEnc)
	s.Tools.OggDec = getEnv("OGGDEC", s.Tools.OggDec)
	s.Tools.Mac = getEnv("MAC", s.Tools.Mac)
	s.Tools.FFmpeg = getEnv("FFMPEG", s.Tools.FFmpeg)
	s.Tools.MetaFlac = getEnv("METAFLAC", s.Tools.MetaFlac)
	s.Tools.VorbisComment = getEnv("VORBISCOMMENT", s.Tools.VorbisComment)

	s.LogLevel = getEnv("LOG_LEVEL", s.LogLevel)
	s.LogFile = getEnv("LOG_FILE", s.LogFile)
	s.LogMaxSize = getEnvInt("LOG_MAX_SIZE", s.LogMaxSize)
	s.LogMaxBackups = getEnvInt("LOG_MAX_BACKUPS", s.LogMaxBackups)
	s.LogMaxAge = getEnvInt("LOG_MAX_AGE", s.LogMaxAge)
	return nil
}

// getEnv gets AUDIOCONV_<key> or returns fallback.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(EnvPrefix + key); exists {
		return value
	}
	return fallback
}

// getEnvInt gets AUDIOCONV_<key> as int or returns fallback.
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(EnvPrefix + key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// ToTools converts settings to codec.Tools. Empty entries fall back to
// the stock program names.
func (s *Settings) ToTools() codec.Tools {
	return codec.Tools{
		Lame:          s.Tools.Lame,
		Flac:          s.Tools.Flac,
		OggEnc:        s.Tools.OggEnc,
		OggDec:        s.Tools.OggDec,
		Mac:           s.Tools.Mac,
		FFmpeg:        s.Tools.FFmpeg,
		MetaFlac:      s.Tools.MetaFlac,
		VorbisComment: s.Tools.VorbisComment,
	}.WithDefaults()
}

// ToLoggerConfig converts settings to logger.Config.
func (s *Settings) ToLoggerConfig() logger.Config {
	return logger.Config{
		Level:      logger.LogLevel(s.LogLevel),
		OutputPath: s.LogFile,
		MaxSize:    s.LogMaxSize,
		MaxBackups: s.LogMaxBackups,
		MaxAge:     s.LogMaxAge,
		Compress:   s.LogCompress,
	}
}

// ToModelSettings converts the encoder tuning part to model.Settings.
func (s *Settings) ToModelSettings() model.Settings {
	return model.Settings{
		Bitrate:   s.Bitrate,
		Quality:   s.Quality,
		VBR:       s.VBR,
		Overwrite: s.Overwrite,
		NoID3v2:   s.NoID3v2,
	}
}
