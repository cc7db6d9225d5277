package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func captureDefault(t *testing.T, level slog.Level) *bytes.Buffer {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: level})))
	return &buf
}

func TestScope(t *testing.T) {
	ctx := context.Background()
	require.Empty(t, BuildID(ctx))
	require.Empty(t, Stage(ctx))

	ctx = WithBuildID(ctx, "build-1")
	scan := WithStage(ctx, "scan")
	transform := WithStage(scan, "transform")

	require.Equal(t, "build-1", BuildID(transform))
	require.Equal(t, "transform", Stage(transform))
	require.Equal(t, "scan", Stage(scan))
	require.Empty(t, Stage(ctx))
}

func TestInfoContext_PrependsScope(t *testing.T) {
	buf := captureDefault(t, slog.LevelInfo)

	ctx := WithStage(WithBuildID(context.Background(), "build-1"), "transform")
	InfoContext(ctx, "document rendered", slog.String("file", "a.md"))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "document rendered", rec["msg"])
	require.Equal(t, "build-1", rec["build_id"])
	require.Equal(t, "transform", rec["stage"])
	require.Equal(t, "a.md", rec["file"])
}

func TestLevels(t *testing.T) {
	buf := captureDefault(t, slog.LevelInfo)

	DebugContext(context.Background(), "hidden")
	require.Empty(t, buf.String())

	WarnContext(context.Background(), "warned")
	ErrorContext(context.Background(), "failed")
	require.Contains(t, buf.String(), `"level":"WARN","msg":"warned"`)
	require.Contains(t, buf.String(), `"level":"ERROR","msg":"failed"`)
}
