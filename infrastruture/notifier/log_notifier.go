package notifier

import (
	"context"
	"fmt"
	"sync"

	"github.com/beka-birhanu/tilt-maze/service/i"
)

var (
	_ i.WinNotifier = &LogWinNotifier{}
	_ i.WinHistory  = &LogWinNotifier{}
)

// LogWinNotifier logs win events and keeps the latest ones in memory. It is
// used when no Redis address is configured.
type LogWinNotifier struct {
	logger i.Logger
	size   int
	events []i.WinEvent
	sync.Mutex
}

// NewLogWinNotifier returns a notifier remembering up to size wins.
func NewLogWinNotifier(logger i.Logger, size int) *LogWinNotifier {
	if size <= 0 {
		size = defaultHistorySize
	}
	return &LogWinNotifier{logger: logger, size: size}
}

// PublishWin implements i.WinNotifier.
func (n *LogWinNotifier) PublishWin(_ context.Context, e i.WinEvent) error {
	n.Lock()
	n.events = append(n.events, e)
	if len(n.events) > n.size {
		n.events = n.events[len(n.events)-n.size:]
	}
	n.Unlock()

	if n.logger != nil {
		n.logger.Info(fmt.Sprintf("session %s won a %dx%d maze", e.SessionID, e.Rows, e.Cols))
	}
	return nil
}

// RecentWins implements i.WinHistory.
func (n *LogWinNotifier) RecentWins(_ context.Context, count int) ([]i.WinEvent, error) {
	if count <= 0 {
		return nil, nil
	}

	n.Lock()
	defer n.Unlock()

	if count > len(n.events) {
		count = len(n.events)
	}
	out := make([]i.WinEvent, 0, count)
	for k := len(n.events) - 1; k >= len(n.events)-count; k-- {
		out = append(out, n.events[k])
	}
	return out, nil
}
