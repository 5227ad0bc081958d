package config

import (
	"testing"

	"github.com/pion/logging"
)

func lookupMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestFromLookupDefaults(t *testing.T) {
	cfg, err := fromLookup(lookupMap(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("got %+v, want defaults %+v", cfg, Default())
	}
}

func TestFromLookupOverrides(t *testing.T) {
	cfg, err := fromLookup(lookupMap(map[string]string{
		"MURASAKI_AUDIO":            "PortAudio",
		"MURASAKI_LANDMARKS":        "stdin",
		"MURASAKI_LOG":              "debug",
		"MURASAKI_PARTICLES":        "5000",
		"MURASAKI_REVERB_PARTITION": "2048",
		"MURASAKI_VOLUME":           "0.25",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AudioBackend != BackendPortAudio {
		t.Errorf("backend = %q", cfg.AudioBackend)
	}
	if cfg.LandmarkSource != LandmarksStdin {
		t.Errorf("landmarks = %q", cfg.LandmarkSource)
	}
	if cfg.LogLevel != logging.LogLevelDebug {
		t.Errorf("log level = %v", cfg.LogLevel)
	}
	if cfg.Particles != 5000 {
		t.Errorf("particles = %d", cfg.Particles)
	}
	if cfg.ReverbPartition != 2048 {
		t.Errorf("partition = %d", cfg.ReverbPartition)
	}
	if cfg.Volume != 0.25 {
		t.Errorf("volume = %v", cfg.Volume)
	}
}

func TestFromLookupKeepsDefaultsOnBadValues(t *testing.T) {
	cfg, err := fromLookup(lookupMap(map[string]string{
		"MURASAKI_AUDIO":            "alsa",
		"MURASAKI_PARTICLES":        "-3",
		"MURASAKI_REVERB_PARTITION": "1000",
		"MURASAKI_LOG":              "loud",
		"MURASAKI_VOLUME":           "11",
	}))
	if err == nil {
		t.Fatal("expected an error")
	}
	if cfg != Default() {
		t.Errorf("bad values leaked into config: %+v", cfg)
	}
}

func TestParseLogLevel(t *testing.T) {
	for in, want := range map[string]logging.LogLevel{
		"off":   logging.LogLevelDisabled,
		"ERROR": logging.LogLevelError,
		"warn":  logging.LogLevelWarn,
		"info":  logging.LogLevelInfo,
		"trace": logging.LogLevelTrace,
	} {
		got, err := ParseLogLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLogLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
}
