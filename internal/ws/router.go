package ws

import (
	"go.uber.org/zap"

	"github.com/CGAJAY/chat-app/internal/models"
)

// Pusher is the capability the router needs: send one event to one
// connection, best-effort.
type Pusher interface {
	Push(connID string, ev Event) bool
}

// Router pushes a just-persisted message to its recipient's live connection,
// if there is one. Persistence has already succeeded by the time Deliver
// runs; an offline recipient simply finds the message on the next fetch.
type Router struct {
	presence *Registry
	pusher   Pusher
	log      *zap.Logger
}

func NewRouter(presence *Registry, pusher Pusher, log *zap.Logger) *Router {
	return &Router{presence: presence, pusher: pusher, log: log}
}

// Deliver never fails: no queue, no retry, no error to the sender.
func (r *Router) Deliver(msg models.Message) {
	connID, ok := r.presence.Lookup(msg.ReceiverID.Hex())
	if !ok {
		return
	}

	if !r.pusher.Push(connID, Event{Type: EventNewMessage, Data: msg}) {
		r.log.Debug("push dropped",
			zap.String("connId", connID),
			zap.String("receiverId", msg.ReceiverID.Hex()))
	}
}
