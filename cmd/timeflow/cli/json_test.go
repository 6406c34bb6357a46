// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestEmitJSON(t *testing.T) {
	type report struct {
		Steps int `json:"steps"`
	}

	var buffer bytes.Buffer
	output := JSONOutput{}
	done, err := output.EmitJSON(&buffer, report{Steps: 3})
	if done || err != nil || buffer.Len() != 0 {
		t.Fatalf("EmitJSON without --json = %v, %v, wrote %q", done, err, buffer.String())
	}

	output.OutputJSON = true
	done, err = output.EmitJSON(&buffer, report{Steps: 3})
	if !done || err != nil {
		t.Fatalf("EmitJSON = %v, %v; want true, nil", done, err)
	}
	var decoded report
	if err := json.Unmarshal(buffer.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buffer.String())
	}
	if decoded.Steps != 3 {
		t.Errorf("steps = %d, want 3", decoded.Steps)
	}
	if !strings.Contains(buffer.String(), "\n  \"steps\"") {
		t.Errorf("output is not indented: %q", buffer.String())
	}
}

func TestEmitJSON_NilSlice(t *testing.T) {
	var buffer bytes.Buffer
	output := JSONOutput{OutputJSON: true}
	var firings []string
	if _, err := output.EmitJSON(&buffer, firings); err != nil {
		t.Fatalf("EmitJSON: %v", err)
	}
	if got := strings.TrimSpace(buffer.String()); got != "[]" {
		t.Errorf("nil slice encoded as %q, want []", got)
	}
}

func TestNewLogger(t *testing.T) {
	var text, structured bytes.Buffer
	newLogger(&text, true).Info("step", "instant", "2026-02-18T10:00:00Z")
	newLogger(&structured, false).Info("step", "instant", "2026-02-18T10:00:00Z")

	if !strings.Contains(text.String(), "msg=step instant=2026-02-18T10:00:00Z") {
		t.Errorf("terminal output = %q, want text handler format", text.String())
	}
	var record map[string]any
	if err := json.Unmarshal(structured.Bytes(), &record); err != nil {
		t.Fatalf("piped output is not JSON: %v\n%s", err, structured.String())
	}
	if record["msg"] != "step" || record["instant"] != "2026-02-18T10:00:00Z" {
		t.Errorf("record = %v", record)
	}
}

func TestIsTerminal(t *testing.T) {
	if IsTerminal(&bytes.Buffer{}) {
		t.Error("IsTerminal(buffer) = true, want false")
	}
}
