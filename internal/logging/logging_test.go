package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewLogger_DefaultLevelIsWarn(t *testing.T) {
	var buf bytes.Buffer
	log, err := newLogger(Config{}, &buf)
	if err != nil {
		t.Fatalf("newLogger error: %v", err)
	}

	log.Info("hidden")
	log.Warn("shown")
	log.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message logged at default level:\n%s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn message missing:\n%s", out)
	}
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := newLogger(Config{Level: "debug", Format: "json"}, &buf)
	if err != nil {
		t.Fatalf("newLogger error: %v", err)
	}

	Component(log, "scrub").Debug("scrub complete")
	log.Sync()

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if entry["msg"] != "scrub complete" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["component"] != "scrub" {
		t.Errorf("component = %v", entry["component"])
	}
	if _, ok := entry["timestamp"]; !ok {
		t.Error("timestamp key missing")
	}
}

func TestNewLogger_BadLevel(t *testing.T) {
	if _, err := newLogger(Config{Level: "loud"}, &bytes.Buffer{}); err == nil {
		t.Error("expected error for unknown level")
	}
}
