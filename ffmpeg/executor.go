package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"scenecast/logger"
	"scenecast/models"
)

// CommandString renders the argument list as a single shell-safe command
// line. Flag tokens (leading '-') are left bare; everything else is quoted so
// that URLs and filter expressions survive the shell.
func CommandString(command []string) string {
	var b strings.Builder
	b.WriteString(command[0])
	for _, part := range command[1:] {
		b.WriteByte(' ')
		if strings.HasPrefix(part, "-") {
			b.WriteString(part)
		} else {
			b.WriteString(shellQuote(part))
		}
	}
	return b.String()
}

func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n\"'\\$&;|<>(){}[]*?~#`!") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Execute runs the synthesized command as a single external process under the
// given timeout. Nonzero exit and deadline expiry are both reported as
// *models.ExecError; there is no retry.
func Execute(ctx context.Context, command []string, timeout time.Duration) error {
	cmdStr := CommandString(command)

	logger.Info("Executing FFmpeg command...")
	logger.Debugf("Command: %.200s...", cmdStr)

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, "sh", "-c", cmdStr)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		logger.Info("FFmpeg command executed successfully")
		return nil
	}

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		logger.Errorf("FFmpeg command timed out after %s", timeout)
		return &models.ExecError{TimedOut: true, Stderr: stderr.String()}
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}
	logger.Errorf("FFmpeg execution failed: %s", tail(stderr.String(), 500))
	return &models.ExecError{ExitCode: exitCode, Stderr: stderr.String()}
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
