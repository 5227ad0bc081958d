package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pion/logging"
)

// Audio backends.
const (
	BackendOto       = "oto"
	BackendPortAudio = "portaudio"
	BackendNone      = "none"
)

// Landmark sources.
const (
	LandmarksKeyboard = "keyboard"
	LandmarksStdin    = "stdin"
)

// Config holds the runtime settings read from the environment.
type Config struct {
	AudioBackend    string
	LandmarkSource  string
	LogLevel        logging.LogLevel
	Particles       int
	ReverbPartition int
	Volume          float64
}

// Default returns the settings used when no environment overrides are set.
func Default() Config {
	return Config{
		AudioBackend:    BackendOto,
		LandmarkSource:  LandmarksKeyboard,
		LogLevel:        logging.LogLevelInfo,
		Particles:       ParticleCount,
		ReverbPartition: ReverbPartitionFrame,
		Volume:          1,
	}
}

// FromEnv loads Config from MURASAKI_* variables. Unparseable values are
// reported and the default is kept.
func FromEnv() (Config, error) {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	var errs []string

	if v, ok := lookup("MURASAKI_AUDIO"); ok && v != "" {
		switch v = strings.ToLower(v); v {
		case BackendOto, BackendPortAudio, BackendNone:
			cfg.AudioBackend = v
		default:
			errs = append(errs, fmt.Sprintf("MURASAKI_AUDIO: unknown backend %q", v))
		}
	}
	if v, ok := lookup("MURASAKI_LANDMARKS"); ok && v != "" {
		switch v = strings.ToLower(v); v {
		case LandmarksKeyboard, LandmarksStdin:
			cfg.LandmarkSource = v
		default:
			errs = append(errs, fmt.Sprintf("MURASAKI_LANDMARKS: unknown source %q", v))
		}
	}
	if v, ok := lookup("MURASAKI_LOG"); ok && v != "" {
		lvl, err := ParseLogLevel(v)
		if err != nil {
			errs = append(errs, "MURASAKI_LOG: "+err.Error())
		} else {
			cfg.LogLevel = lvl
		}
	}
	if v, ok := lookup("MURASAKI_PARTICLES"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			errs = append(errs, fmt.Sprintf("MURASAKI_PARTICLES: want positive integer, got %q", v))
		} else {
			cfg.Particles = n
		}
	}
	if v, ok := lookup("MURASAKI_REVERB_PARTITION"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < RenderQuantum || n&(n-1) != 0 {
			errs = append(errs, fmt.Sprintf("MURASAKI_REVERB_PARTITION: want power of two >= %d, got %q", RenderQuantum, v))
		} else {
			cfg.ReverbPartition = n
		}
	}
	if v, ok := lookup("MURASAKI_VOLUME"); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 || f > 1 {
			errs = append(errs, fmt.Sprintf("MURASAKI_VOLUME: want number in [0,1], got %q", v))
		} else {
			cfg.Volume = f
		}
	}

	if len(errs) > 0 {
		return cfg, fmt.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

// ParseLogLevel maps a level name to a pion log level.
func ParseLogLevel(s string) (logging.LogLevel, error) {
	switch strings.ToLower(s) {
	case "disabled", "off":
		return logging.LogLevelDisabled, nil
	case "error":
		return logging.LogLevelError, nil
	case "warn", "warning":
		return logging.LogLevelWarn, nil
	case "info":
		return logging.LogLevelInfo, nil
	case "debug":
		return logging.LogLevelDebug, nil
	case "trace":
		return logging.LogLevelTrace, nil
	}
	return logging.LogLevelDisabled, fmt.Errorf("unknown log level %q", s)
}

// NewLoggerFactory returns a factory writing to stderr at the configured level.
func (c Config) NewLoggerFactory() logging.LoggerFactory {
	return &logging.DefaultLoggerFactory{
		Writer:          os.Stderr,
		DefaultLogLevel: c.LogLevel,
		ScopeLevels:     map[string]logging.LogLevel{},
	}
}
