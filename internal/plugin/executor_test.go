package plugin

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

// writeScript creates an executable shell script plugin in its own directory.
func writeScript(t *testing.T, name, content string) *Plugin {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("skipping shell script test on Windows")
	}

	dir := t.TempDir()
	scriptPath := filepath.Join(dir, name+".sh")
	if err := os.WriteFile(scriptPath, []byte(content), 0755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}

	return &Plugin{
		Manifest: Manifest{
			Name:       name,
			Version:    "1.0.0",
			Executable: name + ".sh",
		},
		Path:       dir,
		Executable: scriptPath,
	}
}

func TestExecutor_Execute(t *testing.T) {
	p := writeScript(t, "success", `#!/bin/sh
cat <<'EOF'
{"success":true,"data":{"message":"hello world"}}
EOF
`)

	request := &Request{
		Action: "play-pause",
		Pair:   "thumb-index",
		Hand:   "First hand",
		Config: json.RawMessage(`{"key":"space"}`),
	}

	executor := NewExecutor(5 * time.Second)
	response, err := executor.Execute(p, request)
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}

	if !response.Success {
		t.Error("expected success=true, got false")
	}

	var data map[string]interface{}
	if err := json.Unmarshal(response.Data, &data); err != nil {
		t.Fatalf("failed to unmarshal response data: %v", err)
	}
	if data["message"] != "hello world" {
		t.Errorf("expected message 'hello world', got %v", data["message"])
	}
}

func TestExecutor_Execute_ReadsStdin(t *testing.T) {
	p := writeScript(t, "echo", `#!/bin/sh
INPUT=$(cat)
echo "{\"success\":true,\"data\":{\"received\":$INPUT}}"
`)

	request := &Request{
		Action: "notify",
		Pair:   "thumb-middle",
		Hand:   "Second hand",
	}

	executor := NewExecutor(5 * time.Second)
	response, err := executor.Execute(p, request)
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}

	var data struct {
		Received Request `json:"received"`
	}
	if err := json.Unmarshal(response.Data, &data); err != nil {
		t.Fatalf("failed to unmarshal response data: %v", err)
	}

	if data.Received.Pair != "thumb-middle" {
		t.Errorf("plugin received pair %q, want %q", data.Received.Pair, "thumb-middle")
	}
	if data.Received.Hand != "Second hand" {
		t.Errorf("plugin received hand %q, want %q", data.Received.Hand, "Second hand")
	}
}

func TestExecutor_Execute_Timeout(t *testing.T) {
	p := writeScript(t, "slow", `#!/bin/sh
sleep 5
echo '{"success":true}'
`)

	executor := NewExecutor(100 * time.Millisecond)
	_, err := executor.Execute(p, &Request{Action: "noop"})

	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !strings.Contains(err.Error(), "timeout") {
		t.Errorf("error = %v, want timeout", err)
	}
}

func TestExecutor_Execute_ReportedFailure(t *testing.T) {
	p := writeScript(t, "failing", `#!/bin/sh
echo '{"success":false,"error":"unsupported action"}'
`)

	executor := NewExecutor(5 * time.Second)
	response, err := executor.Execute(p, &Request{Action: "bogus"})

	if err == nil {
		t.Fatal("expected error for reported failure")
	}
	if response == nil || response.Error != "unsupported action" {
		t.Errorf("response = %+v, want reported error preserved", response)
	}
}

func TestExecutor_Execute_BadOutput(t *testing.T) {
	p := writeScript(t, "garbage", `#!/bin/sh
echo 'this is not json'
`)

	executor := NewExecutor(5 * time.Second)
	if _, err := executor.Execute(p, &Request{Action: "noop"}); err == nil {
		t.Fatal("expected parse error for non-JSON output")
	}
}

func TestExecutor_Execute_Stderr(t *testing.T) {
	p := writeScript(t, "crash", `#!/bin/sh
echo "something broke" >&2
exit 1
`)

	executor := NewExecutor(5 * time.Second)
	_, err := executor.Execute(p, &Request{Action: "noop"})

	if err == nil {
		t.Fatal("expected error for failing plugin")
	}
	if !strings.Contains(err.Error(), "something broke") {
		t.Errorf("error = %v, want stderr included", err)
	}
}
