package chat

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Relay persists every message and then delivers it to the receiver if they
// are connected.
type Relay struct {
	store    Store
	registry *Registry
	log      logrus.FieldLogger
}

func NewRelay(store Store, registry *Registry, log logrus.FieldLogger) *Relay {
	return &Relay{store: store, registry: registry, log: log}
}

func (r *Relay) Registry() *Registry { return r.registry }

// Send stores the message, then attempts live delivery. The returned bool
// reports whether the receiver's endpoint accepted the event. A failed
// delivery is dropped; history is the recovery path.
func (r *Relay) Send(ctx context.Context, senderID, receiverID, body string) (Message, bool, error) {
	msg, err := r.store.Append(ctx, senderID, receiverID, body)
	if err != nil {
		return Message{}, false, err
	}

	ep, ok := r.registry.Lookup(receiverID)
	if !ok {
		r.log.WithFields(logrus.Fields{"sender_id": senderID, "receiver_id": receiverID}).Debug("receiver offline, message stored")
		return msg, false, nil
	}
	if err := ep.Deliver(messageEvent(msg)); err != nil {
		r.log.WithError(err).WithField("receiver_id", receiverID).Warn("live delivery dropped")
		return msg, false, nil
	}
	return msg, true, nil
}

// History returns the conversation between two users, oldest first.
func (r *Relay) History(ctx context.Context, userA, userB string) ([]Message, error) {
	return r.store.History(ctx, userA, userB)
}
