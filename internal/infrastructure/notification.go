package infrastructure

import (
	"fmt"
	"os/exec"

	"go.uber.org/zap"

	"github.com/yourusername/ytfetch-go/internal/domain"
)

// DesktopNotifier posts a desktop notification when a batch finishes.
// Notifications are best-effort; failures are logged and swallowed.
type DesktopNotifier struct {
	enabled bool
	method  string // osascript or notify-send
	logger  *zap.Logger
}

// NewDesktopNotifier creates a notifier from configuration
func NewDesktopNotifier(config domain.NotificationConfig, logger *zap.Logger) *DesktopNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DesktopNotifier{
		enabled: config.Enabled,
		method:  config.Method,
		logger:  logger,
	}
}

// NotifyBatchDone announces a finished batch
func (n *DesktopNotifier) NotifyBatchDone(report *domain.BatchReport) {
	if !n.enabled {
		return
	}
	title := "ytfetch"
	var body string
	if report.AllSucceeded() {
		body = fmt.Sprintf("Batch complete: %d downloaded", report.Succeeded)
	} else {
		body = fmt.Sprintf("Batch complete: %d downloaded, %d failed", report.Succeeded, report.Failed)
	}

	var cmd *exec.Cmd
	switch n.method {
	case "osascript":
		script := fmt.Sprintf("display notification %q with title %q", body, title)
		cmd = exec.Command("osascript", "-e", script)
	case "notify-send":
		cmd = exec.Command("notify-send", title, body)
	default:
		n.logger.Warn("Unknown notification method", zap.String("method", n.method))
		return
	}
	if err := cmd.Run(); err != nil {
		n.logger.Debug("Notification failed", zap.Error(err))
	}
}
