package websocket

import (
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"github.com/knockandknow/backend/services"
)

// scoreboardConn is the slice of the websocket connection the hub needs;
// *websocket.Conn satisfies it.
type scoreboardConn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// Client is one teacher review session subscribed to a quiz's scoreboard.
type Client struct {
	QuizID uuid.UUID
	Conn   scoreboardConn
}

// ScoreboardUpdate is pushed whenever the scoring service ingests a new or
// changed participant.
type ScoreboardUpdate struct {
	QuizID     uuid.UUID                    `json:"quiz_id"`
	Scoreboard []services.RankedParticipant `json:"scoreboard"`
}

var clients = make(map[uuid.UUID]map[scoreboardConn]bool)
var clientsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)
var Broadcast = make(chan *ScoreboardUpdate)

func init() {
	go RunHub()
}

// RunHub fans scoreboard updates out to every session watching the quiz.
func RunHub() {
	for {
		select {
		case client := <-Register:
			clientsMu.Lock()
			if clients[client.QuizID] == nil {
				clients[client.QuizID] = make(map[scoreboardConn]bool)
			}
			clients[client.QuizID][client.Conn] = true
			clientsMu.Unlock()
			log.Printf("Scoreboard watcher registered for quiz %s", client.QuizID)
		case client := <-Unregister:
			clientsMu.Lock()
			if conns, ok := clients[client.QuizID]; ok {
				delete(conns, client.Conn)
				if len(conns) == 0 {
					delete(clients, client.QuizID)
				}
			}
			clientsMu.Unlock()
			log.Printf("Scoreboard watcher unregistered for quiz %s", client.QuizID)
		case update := <-Broadcast:
			clientsMu.RLock()
			conns := make([]scoreboardConn, 0, len(clients[update.QuizID]))
			for conn := range clients[update.QuizID] {
				conns = append(conns, conn)
			}
			clientsMu.RUnlock()

			for _, conn := range conns {
				if err := conn.WriteJSON(update); err != nil {
					log.Printf("Error pushing scoreboard for quiz %s: %v", update.QuizID, err)
					conn.Close()
					clientsMu.Lock()
					if set, ok := clients[update.QuizID]; ok {
						delete(set, conn)
					}
					clientsMu.Unlock()
				}
			}
		}
	}
}

// ServeScoreboard keeps a subscribed connection open until the client hangs
// up. The quiz id is placed in locals by the ownership check that ran before
// the upgrade.
func ServeScoreboard(conn *websocket.Conn) {
	quizID, ok := conn.Locals("quiz_id").(uuid.UUID)
	if !ok {
		conn.Close()
		return
	}

	client := &Client{QuizID: quizID, Conn: conn}
	Register <- client
	defer func() {
		Unregister <- client
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
