// Package config provides configuration management for audioconv.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Environment overrides, optionally read from a .env file
//   - Conversion to codec.Tools, logger.Config and model.Settings
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Programs are looked up in PATH by their stock names
//	// Only warnings and errors are logged
//
// # Loading from File
//
//	settings, err := config.Load(config.DefaultPath())
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Environment
//
// ApplyEnv reads AUDIOCONV_* variables on top of the file, for example
// AUDIOCONV_LAME=/opt/lame/bin/lame or AUDIOCONV_LOG_LEVEL=debug. A .env
// file in the working directory is loaded first with godotenv.
//
// # Saving Settings
//
//	settings.Tools.FFmpeg = "/usr/local/bin/ffmpeg"
//	err := settings.Save(config.DefaultPath())
package config
