package services

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type armedTimer struct {
	timer         *time.Timer
	armedAt       time.Time
	duration      time.Duration
	questionIndex int
}

// TimerService holds at most one armed countdown per session code. Rearming a
// code cancels the previous countdown, so a callback fires at most once per
// arm. Elapsed time is always measured from the server-side armedAt; client
// reported durations are never trusted.
type TimerService struct {
	mu     sync.Mutex
	timers map[string]*armedTimer
	log    *logrus.Entry
}

func NewTimerService() *TimerService {
	return &TimerService{
		timers: make(map[string]*armedTimer),
		log:    logrus.WithField("component", "timer"),
	}
}

// Arm starts a countdown for code. expire receives the question index the
// timer was armed for, so stale fires can be detected after the session moved
// on.
func (t *TimerService) Arm(code string, questionIndex int, d time.Duration, expire func(questionIndex int)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if prev, ok := t.timers[code]; ok {
		prev.timer.Stop()
	}
	armed := &armedTimer{
		armedAt:       time.Now(),
		duration:      d,
		questionIndex: questionIndex,
	}
	armed.timer = time.AfterFunc(d, func() {
		expire(questionIndex)
	})
	t.timers[code] = armed
	t.log.WithFields(logrus.Fields{
		"code":     code,
		"question": questionIndex,
		"duration": d,
	}).Debug("timer armed")
}

// Disarm cancels any countdown for code.
func (t *TimerService) Disarm(code string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if armed, ok := t.timers[code]; ok {
		armed.timer.Stop()
		delete(t.timers, code)
	}
}

// Elapsed reports how long ago the current countdown for code was armed.
func (t *TimerService) Elapsed(code string) (time.Duration, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	armed, ok := t.timers[code]
	if !ok {
		return 0, false
	}
	return time.Since(armed.armedAt), true
}

// Remaining reports how much of the current countdown for code is left. It can
// be negative when the countdown already expired.
func (t *TimerService) Remaining(code string) (time.Duration, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	armed, ok := t.timers[code]
	if !ok {
		return 0, false
	}
	return armed.duration - time.Since(armed.armedAt), true
}

// Shutdown stops every countdown. Sessions stay active in storage; a restarted
// process re-derives timer state when the host advances.
func (t *TimerService) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for code, armed := range t.timers {
		armed.timer.Stop()
		delete(t.timers, code)
	}
}
