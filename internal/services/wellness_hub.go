package services

import (
	"sync"

	"go.uber.org/zap"
)

// ChangeNotifier is told whenever a user's symptoms, medications or profile
// change.
type ChangeNotifier interface {
	Notify(userID uint)
}

type WellnessComputer interface {
	Compute(userID uint) (WellnessReport, error)
}

// WellnessHub fans freshly computed reports out to per-user subscribers.
// Each subscriber holds at most one pending report; a newer report replaces
// an unread one.
type WellnessHub struct {
	mu          sync.Mutex
	computer    WellnessComputer
	subscribers map[uint]map[uint64]chan WellnessReport
	nextID      uint64
	logger      *zap.Logger
}

func NewWellnessHub(computer WellnessComputer, logger *zap.Logger) *WellnessHub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WellnessHub{
		computer:    computer,
		subscribers: make(map[uint]map[uint64]chan WellnessReport),
		logger:      logger,
	}
}

// Subscribe registers a listener for userID. The returned cancel func must
// be called once the listener goes away; it closes the channel.
func (hub *WellnessHub) Subscribe(userID uint) (<-chan WellnessReport, func()) {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	hub.nextID++
	id := hub.nextID
	updates := make(chan WellnessReport, 1)
	if hub.subscribers[userID] == nil {
		hub.subscribers[userID] = make(map[uint64]chan WellnessReport)
	}
	hub.subscribers[userID][id] = updates

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			hub.mu.Lock()
			defer hub.mu.Unlock()
			delete(hub.subscribers[userID], id)
			if len(hub.subscribers[userID]) == 0 {
				delete(hub.subscribers, userID)
			}
			close(updates)
		})
	}
	return updates, cancel
}

func (hub *WellnessHub) SubscriberCount(userID uint) int {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	return len(hub.subscribers[userID])
}

// Notify recomputes the report for userID and delivers it. Nothing is
// computed when nobody listens.
func (hub *WellnessHub) Notify(userID uint) {
	if hub.SubscriberCount(userID) == 0 {
		return
	}

	report, err := hub.computer.Compute(userID)
	if err != nil {
		hub.logger.Warn("wellness recompute failed", zap.Uint("user_id", userID), zap.Error(err))
		return
	}
	hub.Publish(userID, report)
}

func (hub *WellnessHub) Publish(userID uint, report WellnessReport) {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	for _, updates := range hub.subscribers[userID] {
		select {
		case <-updates:
		default:
		}
		updates <- report
	}
}

type noopNotifier struct{}

func (noopNotifier) Notify(uint) {}

func notifierOrNoop(notifier ChangeNotifier) ChangeNotifier {
	if notifier == nil {
		return noopNotifier{}
	}
	return notifier
}
