package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yourusername/ytfetch-go/internal/domain"
)

// mediaExtensions are the container extensions yt-dlp can leave behind for
// a finished download. .part and .info.json files are never results.
var mediaExtensions = map[string]bool{
	".mp4":  true,
	".webm": true,
	".mkv":  true,
	".mp3":  true,
	".m4a":  true,
	".opus": true,
}

// YTDLPExtractor implements domain.Extractor by shelling out to yt-dlp.
// Each download runs in its own staging subdirectory; the finished file is
// moved into the output directory only after yt-dlp exits cleanly, so a
// killed process never leaves a half-written file where the user looks.
type YTDLPExtractor struct {
	binary     string
	stagingDir string
	logger     *zap.Logger
}

// NewYTDLPExtractor creates an extractor around the yt-dlp binary.
// binary may be a bare name (resolved via PATH) or an absolute path.
func NewYTDLPExtractor(binary, stagingDir string, logger *zap.Logger) *YTDLPExtractor {
	if binary == "" {
		binary = "yt-dlp"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &YTDLPExtractor{
		binary:     binary,
		stagingDir: stagingDir,
		logger:     logger,
	}
}

// Download runs yt-dlp for one request and returns the final file path and
// the video title. Errors carry a domain.ErrorKind classified from the
// yt-dlp output.
func (e *YTDLPExtractor) Download(ctx context.Context, req domain.DownloadRequest, spec domain.StreamSpec, creds *domain.CredentialContext, outputDir string) (string, string, error) {
	staging := filepath.Join(e.stagingDir, uuid.New().String())
	if err := os.MkdirAll(staging, 0755); err != nil {
		return "", "", domain.NewDownloadError(domain.KindFilesystem, "failed to create staging directory", err)
	}
	defer os.RemoveAll(staging)

	args := buildArgs(req, spec, creds, staging)
	e.logger.Debug("Running yt-dlp",
		zap.String("url", req.URL),
		zap.String("command", ShellEscapeCommand(e.binary, args...)))

	var output bytes.Buffer
	cmd := exec.CommandContext(ctx, e.binary, args...)
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", "", domain.NewDownloadError(domain.KindNetwork, "download interrupted", ctx.Err())
		}
		return "", "", classifyOutput(output.String(), err)
	}

	mediaPath, title, err := e.collectResult(staging)
	if err != nil {
		return "", "", err
	}

	finalPath := filepath.Join(outputDir, filepath.Base(mediaPath))
	if err := moveFile(mediaPath, finalPath); err != nil {
		return "", "", domain.NewDownloadError(domain.KindFilesystem, "failed to move finished download", err)
	}
	return finalPath, title, nil
}

// buildArgs assembles the yt-dlp command line from the resolved spec and
// credentials. Kept as a pure function so the flag wiring is testable.
func buildArgs(req domain.DownloadRequest, spec domain.StreamSpec, creds *domain.CredentialContext, stagingDir string) []string {
	args := []string{
		"--no-playlist",
		"--no-warnings",
		"--restrict-filenames",
		"--write-info-json",
		"-o", "%(title)s.%(ext)s",
		"-P", stagingDir,
	}
	if spec.AudioOnly {
		args = append(args,
			"-f", spec.Selector,
			"-x",
			"--audio-format", string(spec.Container),
			"--audio-quality", fmt.Sprintf("%dK", spec.AudioBitrate),
		)
	} else {
		args = append(args,
			"-f", spec.Selector,
			"--merge-output-format", string(spec.Container),
		)
	}
	if !creds.Anonymous() {
		args = append(args, "--cookies", creds.CookieFile)
	}
	args = append(args, req.URL)
	return args
}

// classifyOutput tags a failed yt-dlp run with an error kind. yt-dlp has
// no machine-readable error channel; matching its messages is the same
// approach every wrapper ends up with.
func classifyOutput(output string, runErr error) *domain.DownloadError {
	lower := strings.ToLower(output)
	msg := lastErrorLine(output)

	switch {
	case containsAny(lower,
		"sign in to confirm your age",
		"age-restricted",
		"members-only",
		"join this channel",
		"private video. sign in",
		"login required",
		"sign in to confirm",
		"use --cookies",
		"http error 401",
		"http error 403"):
		return domain.NewDownloadError(domain.KindAuthRequired, msg, runErr)

	case containsAny(lower,
		"video unavailable",
		"this video has been removed",
		"account associated with this video has been terminated",
		"private video",
		"is not a valid url",
		"unable to extract video id",
		"http error 404"):
		return domain.NewDownloadError(domain.KindNotFound, msg, runErr)

	case containsAny(lower,
		"not available in your country",
		"geo restriction",
		"blocked it in your country",
		"uploader has not made this video available in your country"):
		return domain.NewDownloadError(domain.KindRegionBlocked, msg, runErr)

	case containsAny(lower,
		"no space left on device",
		"permission denied",
		"read-only file system",
		"unable to open for writing"):
		return domain.NewDownloadError(domain.KindFilesystem, msg, runErr)

	case containsAny(lower,
		"requested format is not available",
		"no video formats found"):
		return domain.NewDownloadError(domain.KindUnsupportedFormat, msg, runErr)
	}

	// Timeouts, resets, TLS hiccups and every unrecognized failure retry;
	// a wrongly retried fatal error costs a few attempts, a wrongly
	// dropped transient error costs the download.
	return domain.NewDownloadError(domain.KindNetwork, msg, runErr)
}

// lastErrorLine pulls the most useful line out of yt-dlp output
func lastErrorLine(output string) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if strings.HasPrefix(line, "ERROR:") {
			return strings.TrimSpace(strings.TrimPrefix(line, "ERROR:"))
		}
	}
	if len(lines) > 0 {
		return lines[len(lines)-1]
	}
	return "yt-dlp failed"
}

func containsAny(s string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(s, needle) {
			return true
		}
	}
	return false
}

// collectResult finds the downloaded media file in the staging directory
// and reads the title from yt-dlp's .info.json.
func (e *YTDLPExtractor) collectResult(staging string) (string, string, error) {
	entries, err := os.ReadDir(staging)
	if err != nil {
		return "", "", domain.NewDownloadError(domain.KindFilesystem, "failed to read staging directory", err)
	}

	var mediaPath, infoPath string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".info.json") {
			infoPath = filepath.Join(staging, name)
			continue
		}
		if mediaExtensions[strings.ToLower(filepath.Ext(name))] {
			mediaPath = filepath.Join(staging, name)
		}
	}
	if mediaPath == "" {
		return "", "", domain.NewDownloadError(domain.KindUnsupportedFormat, "yt-dlp produced no media file", nil)
	}

	title := strings.TrimSuffix(filepath.Base(mediaPath), filepath.Ext(mediaPath))
	if infoPath != "" {
		if data, err := os.ReadFile(infoPath); err == nil {
			var info struct {
				Title string `json:"title"`
			}
			if json.Unmarshal(data, &info) == nil && info.Title != "" {
				title = info.Title
			}
		}
	}
	return mediaPath, title, nil
}

// moveFile renames src to dst, falling back to copy-and-delete across
// filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return err
	}
	return os.Remove(src)
}

// FindYTDLP resolves the yt-dlp binary: the configured path if absolute,
// then PATH, then next to the running executable.
func FindYTDLP(configured string) (string, error) {
	if configured != "" && filepath.IsAbs(configured) {
		if _, err := os.Stat(configured); err == nil {
			return configured, nil
		}
		return "", fmt.Errorf("yt-dlp binary not found at %s", configured)
	}
	name := configured
	if name == "" {
		name = "yt-dlp"
	}
	if path, err := exec.LookPath(name); err == nil {
		return path, nil
	}
	if execPath, err := os.Executable(); err == nil {
		sibling := filepath.Join(filepath.Dir(execPath), name)
		if _, err := os.Stat(sibling); err == nil {
			return sibling, nil
		}
	}
	return "", fmt.Errorf("yt-dlp binary %q not found in PATH", name)
}
