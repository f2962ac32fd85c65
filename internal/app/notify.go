package app

import (
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/inkwell/internal/timer"
)

// Notification kinds.
const (
	NotifyInfo    = "info"
	NotifySuccess = "success"
	NotifyWarning = "warning"
	NotifyError   = "error"
)

const notifyPrefix = "notify:"

// Notification is a transient message shown in the status line.
type Notification struct {
	ID        string
	Message   string
	Type      string // "info", "success", "warning", "error"
	StartTime time.Time
	Duration  time.Duration
}

// ShowNotification displays a notification for the configured duration and
// logs it. The returned command expires it.
func (m *Model) ShowNotification(message, notifType string) tea.Cmd {
	m.notifySeq++
	id := strconv.FormatUint(m.notifySeq, 10)
	d := m.cfg.Timing.Notification()

	m.notifications = append(m.notifications, Notification{
		ID:        id,
		Message:   message,
		Type:      notifType,
		StartTime: m.now(),
		Duration:  d,
	})

	switch notifType {
	case NotifyError:
		m.logger.Error(message)
	case NotifyWarning:
		m.logger.Warn(message)
	default:
		m.logger.Info(message)
	}

	_, cmd := m.timers.Schedule(notifyPrefix+id, d)
	return cmd
}

// handleNotificationTimer removes the notification whose expiry fired.
func (m *Model) handleNotificationTimer(msg timer.FiredMsg) bool {
	id, ok := strings.CutPrefix(msg.Handle.Key, notifyPrefix)
	if !ok || !m.timers.Claim(msg) {
		return false
	}
	for i, n := range m.notifications {
		if n.ID == id {
			m.notifications = append(m.notifications[:i], m.notifications[i+1:]...)
			break
		}
	}
	return true
}

// Notifications returns the visible notifications, oldest first.
func (m *Model) Notifications() []Notification {
	return m.notifications
}
