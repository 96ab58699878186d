package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubscribeReceivesLogEntries(t *testing.T) {
	l := New("pipeline", "test")
	ch := l.Subscribe()

	l.Info("hello %s", "world")

	entry := <-ch
	assert.Equal(t, "INFO", entry.Level)
	assert.Equal(t, "hello world", entry.Message)
}

func TestWithFieldsAttachesFieldsToEntries(t *testing.T) {
	l := New("pipeline", "test")
	ch := l.Subscribe()

	l.WithFields(map[string]string{"stage": "bronze"}).Warn("slow ingest")

	entry := <-ch
	assert.Equal(t, "WARN", entry.Level)
	assert.Equal(t, "bronze", entry.Fields["stage"])
}

func TestFormatServiceNameTruncatesLongNames(t *testing.T) {
	got := formatServiceName("a-very-long-service-name-indeed")
	assert.Len(t, got, ServiceNameWidth)
	assert.Contains(t, got, "…")
}

func TestFormatServiceNamePadsShortNames(t *testing.T) {
	got := formatServiceName("pipeline")
	assert.Len(t, got, ServiceNameWidth)
}
