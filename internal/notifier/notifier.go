// Package notifier sends desktop notifications through the classtimer tray
// app. The tray app advertises itself with a lockfile holding
// "port|pid|secret"; notifications are POSTed to that local port.
package notifier

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"
	"github.com/spf13/afero"

	"github.com/julianstephens/classtimer/internal/constants"
	"github.com/julianstephens/classtimer/internal/logger"
)

// ErrTrayNotRunning means there is no tray app to deliver to. Callers
// usually treat it as "notifications off" rather than a failure.
var ErrTrayNotRunning = errors.New(constants.TrayAppExecutable + " is not running")

type Notifier struct {
	fs            afero.Fs
	client        *http.Client
	userConfigDir func() (string, error)
	findProcess   func(pid int) (ps.Process, error)
	retries       int
	retryDelay    time.Duration
}

type WebhookPayload struct {
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

func New() *Notifier {
	return &Notifier{
		fs:            afero.NewOsFs(),
		client:        &http.Client{Timeout: 2 * time.Second},
		userConfigDir: os.UserConfigDir,
		findProcess:   ps.FindProcess,
		retries:       constants.NotifyMaxRetries,
		retryDelay:    constants.NotifyRetryDelay,
	}
}

// Notify shows text for the default duration.
func (n *Notifier) Notify(text string) error {
	lockDir, err := n.TrayAppConfigDir()
	if err != nil {
		return err
	}

	port, secret, err := n.findAndValidateTrayProcess(filepath.Join(lockDir, constants.NotifierLockfileName))
	if err != nil {
		return err
	}

	payload := WebhookPayload{
		Text:       text,
		DurationMs: constants.NotificationDurationMs,
	}

	var lastErr error
	for attempt := 0; attempt < max(n.retries, 1); attempt++ {
		if attempt > 0 {
			time.Sleep(n.retryDelay)
		}
		lastErr = n.send(port, secret, payload)
		if lastErr == nil {
			return nil
		}
		logger.Debug("Notification attempt failed", "attempt", attempt+1, "error", lastErr)
	}
	return lastErr
}

// Available checks that the tray app's lockfile points at a live tray process.
func (n *Notifier) Available() error {
	lockDir, err := n.TrayAppConfigDir()
	if err != nil {
		return err
	}
	_, _, err = n.findAndValidateTrayProcess(filepath.Join(lockDir, constants.NotifierLockfileName))
	return err
}

// TrayAppConfigDir returns the directory holding the tray app's lockfile. The
// tray app may relocate it through lockfile_dir in its settings.json.
func (n *Notifier) TrayAppConfigDir() (string, error) {
	configDir, err := n.userConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	trayConfigDir := filepath.Join(configDir, constants.TrayAppIdentifier)

	data, err := afero.ReadFile(n.fs, filepath.Join(trayConfigDir, "settings.json"))
	if err != nil {
		return trayConfigDir, nil
	}
	var store struct {
		Settings struct {
			LockfileDir *string `json:"lockfile_dir"`
		} `json:"settings"`
	}
	if err := json.Unmarshal(data, &store); err != nil {
		logger.Warn("Ignoring unreadable tray settings", "error", err)
		return trayConfigDir, nil
	}
	if store.Settings.LockfileDir != nil && *store.Settings.LockfileDir != "" {
		return *store.Settings.LockfileDir, nil
	}
	return trayConfigDir, nil
}

func (n *Notifier) findAndValidateTrayProcess(lockfilePath string) (string, string, error) {
	content, err := afero.ReadFile(n.fs, lockfilePath)
	if err != nil {
		return "", "", ErrTrayNotRunning
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return "", "", errors.New("lockfile is malformed")
	}

	port := strings.TrimSpace(parts[0])
	if port == "" {
		return "", "", errors.New("port in lockfile is empty")
	}
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return "", "", errors.New("invalid port number in lockfile")
	}
	if portNum < 1 || portNum > 65535 {
		return "", "", fmt.Errorf("port number %d is outside valid range (1-65535)", portNum)
	}

	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", "", errors.New("invalid process ID in lockfile")
	}
	secret := parts[2]
	if strings.TrimSpace(secret) == "" {
		return "", "", errors.New("secret in lockfile is empty")
	}

	process, err := n.findProcess(pid)
	if err != nil || process == nil {
		return "", "", ErrTrayNotRunning
	}
	if !strings.HasPrefix(process.Executable(), constants.TrayAppExecutable) {
		return "", "", fmt.Errorf("process with PID %d is not %s (is %s)", pid, constants.TrayAppExecutable, process.Executable())
	}

	return port, secret, nil
}

func (n *Notifier) send(port, secret string, payload WebhookPayload) error {
	url := fmt.Sprintf("http://127.0.0.1:%s", port)

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Classtimer-Secret", secret)

	res, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}
	body, _ := io.ReadAll(res.Body)
	return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, string(body))
}
