package config_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/ozkkadir/depo-yonetim-sistemi/config"
	"github.com/sirupsen/logrus"
)

// Every layer reports failures through LogError, so the field shape is
// part of the contract: module/funcName/context always present, data
// only when supplied.
func TestLogError_FieldShape(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.JSONFormatter{})

	config.LogError(logger, "handlers", "BatchImport", "cid-123", map[string]any{"rows": 3}, errors.New("row 2: invalid input"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not json: %v", err)
	}
	if entry["module"] != "handlers" || entry["funcName"] != "BatchImport" || entry["context"] != "cid-123" {
		t.Fatalf("field shape wrong: %v", entry)
	}
	if entry["msg"] != "row 2: invalid input" {
		t.Fatalf("msg = %v, want the error text", entry["msg"])
	}
	if _, ok := entry["data"]; !ok {
		t.Fatalf("data field missing when supplied: %v", entry)
	}

	buf.Reset()
	config.LogError(logger, "models", "ReceiveStock", "cid-456", nil, errors.New("record not found"))
	entry = map[string]any{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not json: %v", err)
	}
	if _, ok := entry["data"]; ok {
		t.Fatalf("data field present for nil data: %v", entry)
	}
}
