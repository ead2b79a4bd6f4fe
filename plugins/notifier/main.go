// Package main provides a notifier plugin for macOS.
// It posts desktop notifications for pinch triggers via AppleScript.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Request represents the input from the plugin executor.
type Request struct {
	Action string          `json:"action"`
	Pair   string          `json:"pair"`
	Hand   string          `json:"hand"`
	Config json.RawMessage `json:"config"`
	Params json.RawMessage `json:"params"`
}

// Response represents the output to the plugin executor.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// NotifyConfig overrides the default notification text.
type NotifyConfig struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Sound   string `json:"sound"`
}

func main() {
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeErrorResponse(fmt.Sprintf("failed to decode request: %v", err))
		return
	}

	switch req.Action {
	case "notify":
		if err := handleNotify(&req); err != nil {
			writeErrorResponse(fmt.Sprintf("action %s failed: %v", req.Action, err))
			return
		}
	default:
		writeErrorResponse(fmt.Sprintf("unknown action: %s", req.Action))
		return
	}

	writeSuccessResponse()
}

// handleNotify posts a notification describing the triggering pinch.
func handleNotify(req *Request) error {
	c := NotifyConfig{
		Title:   "Mudra",
		Message: fmt.Sprintf("%s pinched %s", req.Hand, req.Pair),
	}
	if len(req.Config) > 0 {
		if err := json.Unmarshal(req.Config, &c); err != nil {
			return fmt.Errorf("failed to parse config: %w", err)
		}
		if c.Title == "" {
			c.Title = "Mudra"
		}
		if c.Message == "" {
			c.Message = fmt.Sprintf("%s pinched %s", req.Hand, req.Pair)
		}
	}

	script := fmt.Sprintf(`display notification "%s" with title "%s"`,
		escape(c.Message), escape(c.Title))
	if c.Sound != "" {
		script += fmt.Sprintf(` sound name "%s"`, escape(c.Sound))
	}
	return runAppleScript(script)
}

// escape quotes AppleScript string content.
func escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

// writeErrorResponse writes an error response to stdout.
func writeErrorResponse(errMsg string) {
	resp := Response{
		Success: false,
		Error:   errMsg,
	}
	json.NewEncoder(os.Stdout).Encode(resp)
}

// writeSuccessResponse writes a success response to stdout.
func writeSuccessResponse() {
	resp := Response{
		Success: true,
	}
	json.NewEncoder(os.Stdout).Encode(resp)
}

// runAppleScript executes an AppleScript command and returns any error.
func runAppleScript(script string) error {
	cmd := exec.Command("osascript", "-e", script)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, string(output))
	}
	return nil
}
