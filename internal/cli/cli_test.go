package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"wavnorm.click/internal/config"
	"wavnorm.click/internal/fs"
)

// testWAV builds a minimal stereo 16-bit RIFF/WAVE file with two frames.
func testWAV() []byte {
	sampleData := []byte{
		0x7F, 0x7F, 0x80, 0x80, // left max, right min
		0x00, 0x00, 0x00, 0x00,
	}

	wav := make([]byte, 0, 44+len(sampleData))
	wav = append(wav, []byte("RIFF")...)
	wav = append(wav, []byte{0, 0, 0, 0}...)
	wav = append(wav, []byte("WAVE")...)
	wav = append(wav, []byte("fmt ")...)
	wav = append(wav, []byte{16, 0, 0, 0}...)
	wav = append(wav, []byte{1, 0}...)          // PCM
	wav = append(wav, []byte{2, 0}...)          // stereo
	wav = append(wav, []byte{0x44, 0xAC, 0, 0}...) // 44100 Hz
	wav = append(wav, []byte{0x10, 0xB1, 2, 0}...) // byte rate
	wav = append(wav, []byte{4, 0}...)          // block align
	wav = append(wav, []byte{16, 0}...)         // 16-bit
	wav = append(wav, []byte("data")...)
	wav = append(wav, byte(len(sampleData)), 0, 0, 0)
	wav = append(wav, sampleData...)

	totalSize := len(wav) - 8
	wav[4] = byte(totalSize)
	wav[5] = byte(totalSize >> 8)

	return wav
}

func newTestCLI(t *testing.T) (*CLI, afero.Fs) {
	t.Helper()
	t.Setenv("WAVNORM_HISTORY", "false")

	memFS := fs.NewDefaultFactory().Memory()
	return NewCLIWithFilesystem(memFS), memFS
}

func runCLI(t *testing.T, c *CLI, args ...string) (int, string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code := c.Run(append([]string{"wavnorm"}, args...), strings.NewReader(""), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestCLIVersion(t *testing.T) {
	c, _ := newTestCLI(t)

	code, stdout, _ := runCLI(t, c, "--version")
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !strings.Contains(stdout, Version) {
		t.Errorf("version output missing %q: %s", Version, stdout)
	}
}

func TestCLIUnknownCommand(t *testing.T) {
	c, _ := newTestCLI(t)

	code, _, stderr := runCLI(t, c, "frobnicate")
	if code == 0 {
		t.Error("expected non-zero exit code for unknown command")
	}
	if stderr == "" {
		t.Error("expected error output")
	}
}

func TestInfoCommand(t *testing.T) {
	c, memFS := newTestCLI(t)

	if err := afero.WriteFile(memFS, "/sound.wav", testWAV(), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	code, stdout, stderr := runCLI(t, c, "info", "/sound.wav")
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d (stderr: %s)", code, stderr)
	}

	for _, fragment := range []string{"Channels:", "2", "44100 Hz", "PCM_SIGNED", "little-endian", "Frames:"} {
		if !strings.Contains(stdout, fragment) {
			t.Errorf("info output missing %q:\n%s", fragment, stdout)
		}
	}
}

func TestInfoCommandMissingFile(t *testing.T) {
	c, _ := newTestCLI(t)

	code, _, stderr := runCLI(t, c, "info", "/missing.wav")
	if code == 0 {
		t.Error("expected non-zero exit code for missing file")
	}
	if !strings.Contains(stderr, "missing.wav") {
		t.Errorf("stderr does not name the file: %s", stderr)
	}
}

func TestExtractCommand(t *testing.T) {
	c, memFS := newTestCLI(t)

	if err := afero.WriteFile(memFS, "/sound.wav", testWAV(), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	code, stdout, stderr := runCLI(t, c, "extract", "/sound.wav", "--channel", "0")
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d (stderr: %s)", code, stderr)
	}

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 sample lines, got %d: %q", len(lines), stdout)
	}
	if lines[0] != "1" {
		t.Errorf("first left sample = %q, expected \"1\"", lines[0])
	}
}

func TestExtractCommandRightChannel(t *testing.T) {
	c, memFS := newTestCLI(t)

	if err := afero.WriteFile(memFS, "/sound.wav", testWAV(), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	code, stdout, _ := runCLI(t, c, "extract", "/sound.wav", "--channel", "1")
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if lines[0] != "-1" {
		t.Errorf("first right sample = %q, expected \"-1\"", lines[0])
	}
}

func TestExtractCommandInvalidChannel(t *testing.T) {
	c, memFS := newTestCLI(t)

	if err := afero.WriteFile(memFS, "/sound.wav", testWAV(), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	code, _, stderr := runCLI(t, c, "extract", "/sound.wav", "--channel", "5")
	if code == 0 {
		t.Error("expected non-zero exit code for invalid channel")
	}
	if !strings.Contains(stderr, "channel") {
		t.Errorf("stderr does not mention the channel: %s", stderr)
	}
}

func TestExtractCommandToFile(t *testing.T) {
	c, memFS := newTestCLI(t)

	if err := afero.WriteFile(memFS, "/sound.wav", testWAV(), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	code, stdout, _ := runCLI(t, c, "extract", "/sound.wav", "-c", "0", "-o", "/samples.txt")
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if stdout != "" {
		t.Errorf("expected empty stdout when writing to file, got %q", stdout)
	}

	content, err := afero.ReadFile(memFS, "/samples.txt")
	if err != nil {
		t.Fatalf("output file not written: %v", err)
	}
	if !strings.HasPrefix(string(content), "1\n") {
		t.Errorf("unexpected file content: %q", content)
	}
}

func TestHistoryCommand(t *testing.T) {
	memFS := fs.NewDefaultFactory().Memory()
	c := NewCLIWithFilesystem(memFS)

	// config with history pointed at a real temp file (sqlite needs the OS
	// filesystem) and file logging off
	dbPath := filepath.Join(t.TempDir(), "history.db")
	cfg := config.Config{
		Volume:   1.0,
		LogLevel: "warn",
		History:  &config.HistoryConfig{Enabled: true, Path: dbPath},
	}
	configJSON, _ := json.Marshal(cfg)
	if err := afero.WriteFile(memFS, "/config.json", configJSON, 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if err := afero.WriteFile(memFS, "/sound.wav", testWAV(), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	code, _, stderr := runCLI(t, c, "info", "/sound.wav", "--config", "/config.json")
	if code != 0 {
		t.Fatalf("info failed: %d (stderr: %s)", code, stderr)
	}

	code, stdout, stderr := runCLI(t, c, "history", "--config", "/config.json")
	if code != 0 {
		t.Fatalf("history failed: %d (stderr: %s)", code, stderr)
	}
	if !strings.Contains(stdout, "/sound.wav") {
		t.Errorf("history output missing decoded file:\n%s", stdout)
	}
	if !strings.Contains(stdout, "WAV") {
		t.Errorf("history output missing format name:\n%s", stdout)
	}
}

func TestHistoryCommandDisabled(t *testing.T) {
	c, _ := newTestCLI(t)

	code, _, stderr := runCLI(t, c, "history")
	if code == 0 {
		t.Error("expected non-zero exit when history is disabled")
	}
	if !strings.Contains(stderr, "disabled") {
		t.Errorf("stderr does not explain: %s", stderr)
	}
}
