package main

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestGetVersion(t *testing.T) {
	t.Parallel()

	if v := getVersion(); v == "" {
		t.Error("getVersion() returned empty string")
	}
	if c := getCommit(); c == "" {
		t.Error("getCommit() returned empty string")
	}
	if d := getDate(); d == "" {
		t.Error("getDate() returned empty string")
	}
}

func TestVersionCmd(t *testing.T) {
	t.Parallel()

	t.Run("text output", func(t *testing.T) {
		t.Parallel()

		out, _, err := executeCommand(t, "", "version")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{"urlfeature version", "commit:", "built:", "go:"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected output to contain %q, got %q", want, out)
			}
		}
	})

	t.Run("json output", func(t *testing.T) {
		t.Parallel()

		out, _, err := executeCommand(t, "", "version", "--json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var info versionInfo
		if err := json.Unmarshal([]byte(out), &info); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if info.Version == "" || info.Go == "" {
			t.Errorf("expected version and go fields, got %+v", info)
		}
	})
}
