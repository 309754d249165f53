package websocket

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/knockandknow/backend/services"
)

type fakeConn struct {
	mu       sync.Mutex
	failing  bool
	closed   bool
	attempts int
	writes   []*ScoreboardUpdate
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attempts++
	if f.failing {
		return errors.New("connection gone")
	}
	if update, ok := v.(*ScoreboardUpdate); ok {
		f.writes = append(f.writes, update)
	}
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) writeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.writes)
}

func (f *fakeConn) wasClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *fakeConn) attemptCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.attempts
}

func subscribe(quizID uuid.UUID, conn *fakeConn) *Client {
	client := &Client{QuizID: quizID, Conn: conn}
	Register <- client
	return client
}

// settle registers and immediately unregisters a throwaway client. The hub
// handles one message at a time, so once these two round-trips complete every
// previously sent message has been fully processed.
func settle() {
	throwaway := &Client{QuizID: uuid.New(), Conn: &fakeConn{}}
	Register <- throwaway
	Unregister <- throwaway
}

func update(quizID uuid.UUID) *ScoreboardUpdate {
	return &ScoreboardUpdate{
		QuizID: quizID,
		Scoreboard: []services.RankedParticipant{
			{DisplayName: "Alice", Score: 9, Rank: 1},
		},
	}
}

func TestHubBroadcastReachesOnlySubscribedQuiz(t *testing.T) {
	quizA := uuid.New()
	quizB := uuid.New()
	watcherA := &fakeConn{}
	watcherB := &fakeConn{}
	subscribe(quizA, watcherA)
	subscribe(quizB, watcherB)

	Broadcast <- update(quizA)
	settle()

	if watcherA.writeCount() != 1 {
		t.Fatalf("expected 1 update for quiz A watcher, got %d", watcherA.writeCount())
	}
	if got := watcherA.writes[0].QuizID; got != quizA {
		t.Fatalf("expected update for quiz %s, got %s", quizA, got)
	}
	if watcherB.writeCount() != 0 {
		t.Fatalf("quiz B watcher must not receive quiz A updates, got %d", watcherB.writeCount())
	}
}

func TestHubBroadcastFansOutToAllWatchers(t *testing.T) {
	quizID := uuid.New()
	first := &fakeConn{}
	second := &fakeConn{}
	subscribe(quizID, first)
	subscribe(quizID, second)

	Broadcast <- update(quizID)
	settle()

	if first.writeCount() != 1 || second.writeCount() != 1 {
		t.Fatalf("expected both watchers to receive the update, got %d and %d",
			first.writeCount(), second.writeCount())
	}
}

func TestHubUnregisterStopsDelivery(t *testing.T) {
	quizID := uuid.New()
	watcher := &fakeConn{}
	client := subscribe(quizID, watcher)

	Broadcast <- update(quizID)
	Unregister <- client
	Broadcast <- update(quizID)
	settle()

	if watcher.writeCount() != 1 {
		t.Fatalf("expected no delivery after unregister, got %d writes", watcher.writeCount())
	}
}

func TestHubPrunesDeadConnections(t *testing.T) {
	quizID := uuid.New()
	dead := &fakeConn{failing: true}
	alive := &fakeConn{}
	subscribe(quizID, dead)
	subscribe(quizID, alive)

	Broadcast <- update(quizID)
	settle()

	if !dead.wasClosed() {
		t.Fatal("expected failing connection to be closed")
	}

	Broadcast <- update(quizID)
	settle()

	if dead.attemptCount() != 1 {
		t.Fatalf("pruned connection must not be written again, got %d attempts", dead.attemptCount())
	}
	if alive.writeCount() != 2 {
		t.Fatalf("healthy watcher should receive both updates, got %d", alive.writeCount())
	}
}
