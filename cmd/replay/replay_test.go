package main

import (
	"bytes"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixturesDir = "../../internal/pkg/payments/testdata"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadPayloads(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
		wantErr bool
	}{
		{name: "object", content: `{"payment_id":"a"}`, want: 1},
		{name: "array", content: `[{"id":"a"},{"id":"b"}]`, want: 2},
		{name: "empty array", content: `[]`, want: 0},
		{name: "array with scalar", content: `[{"id":"a"}, 3]`, wantErr: true},
		{name: "scalar", content: `42`, wantErr: true},
		{name: "broken object", content: `{"id":`, wantErr: true},
		{name: "empty", content: "  ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := loadPayloads(writeFile(t, "payload.json", tt.content))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestLoadPayloads_Fixtures(t *testing.T) {
	batch, err := loadPayloads(filepath.Join(fixturesDir, "batch.json"))
	require.NoError(t, err)
	assert.Len(t, batch, 3)

	single, err := loadPayloads(filepath.Join(fixturesDir, "collector.json"))
	require.NoError(t, err)
	assert.Len(t, single, 1)
}

func TestReplayer_Run(t *testing.T) {
	var posted []string
	var out bytes.Buffer
	r := &replayer{
		opts: replayOptions{Target: "http://example/webhook"},
		out:  &out,
		post: func(target string, body []byte, _ time.Duration) (delivery, error) {
			assert.Equal(t, "http://example/webhook", target)
			posted = append(posted, string(body))
			return delivery{Status: fiber.StatusOK, Body: []byte(`{"success":true}`)}, nil
		},
	}

	file := writeFile(t, "two.json", `[{"id":"a"},{"id":"b"}]`)
	require.NoError(t, r.Run([]string{file}))
	assert.Equal(t, []string{`{"id":"a"}`, `{"id":"b"}`}, posted)
	assert.Contains(t, out.String(), "sent=2 failed=0")
}

func TestReplayer_FailFast(t *testing.T) {
	calls := 0
	r := &replayer{
		opts: replayOptions{FailFast: true},
		out:  &bytes.Buffer{},
		post: func(string, []byte, time.Duration) (delivery, error) {
			calls++
			return delivery{Status: fiber.StatusServiceUnavailable}, nil
		},
	}

	err := r.Run([]string{writeFile(t, "three.json", `[{"id":"a"},{"id":"b"},{"id":"c"}]`)})
	assert.ErrorIs(t, err, errFailFast)
	assert.Equal(t, 1, calls)
}

func TestReplayer_ContinuesWithoutFailFast(t *testing.T) {
	calls := 0
	var out bytes.Buffer
	r := &replayer{
		opts: replayOptions{},
		out:  &out,
		post: func(string, []byte, time.Duration) (delivery, error) {
			calls++
			return delivery{Status: fiber.StatusServiceUnavailable}, nil
		},
	}

	err := r.Run([]string{writeFile(t, "three.json", `[{"id":"a"},{"id":"b"},{"id":"c"}]`)})
	assert.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.Contains(t, out.String(), "sent=3 failed=3")
}

func TestReplayCommand_AgainstServer(t *testing.T) {
	var (
		mu       sync.Mutex
		received []map[string]any
	)
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Post("/webhook", func(c *fiber.Ctx) error {
		var body map[string]any
		if err := json.Unmarshal(c.Body(), &body); err != nil {
			return c.SendStatus(fiber.StatusBadRequest)
		}
		mu.Lock()
		received = append(received, body)
		mu.Unlock()
		return c.JSON(fiber.Map{"success": true})
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })

	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{
		"--target", "http://" + ln.Addr().String() + "/webhook",
		filepath.Join(fixturesDir, "minimal.json"),
		filepath.Join(fixturesDir, "batch.json"),
	})

	require.NoError(t, cmd.Execute())
	mu.Lock()
	assert.Len(t, received, 4)
	mu.Unlock()
	assert.Equal(t, 5, strings.Count(out.String(), "\n"))
}
