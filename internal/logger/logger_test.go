// ABOUTME: Unit tests for the logger wrapper
// ABOUTME: Verifies verbosity gating and output redirection

package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestDebug_SuppressedWithoutVerbose(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	SetVerbose(false)
	Debug("hidden message")

	if strings.Contains(buf.String(), "hidden message") {
		t.Errorf("Debug() emitted output without verbose: %q", buf.String())
	}
}

func TestDebug_ShownWithVerbose(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer func() {
		SetVerbose(false)
		SetOutput(nil)
	}()

	SetVerbose(true)
	if !IsVerbose() {
		t.Fatal("IsVerbose() = false after SetVerbose(true)")
	}

	Debug("visible %s", "message")

	if !strings.Contains(buf.String(), "visible message") {
		t.Errorf("Debug() output missing message: %q", buf.String())
	}
}

func TestInfo_AlwaysShown(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	SetVerbose(false)
	Info("connection established to %s", "unix:///run/podman/podman.sock")

	if !strings.Contains(buf.String(), "connection established") {
		t.Errorf("Info() output missing message: %q", buf.String())
	}
}
