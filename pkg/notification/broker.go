// Package notification pushes signup activity to administrators over
// server-sent events.
package notification

import (
	"fmt"
	"sync"

	"github.com/apartment-life/backend/pkg/model"
	"golang.org/x/exp/maps"
)

const (
	TypeSignupReceived = "signup_received"
	TypeSignupCanceled = "signup_canceled"
)

func NewBroker() *Broker {
	return &Broker{
		subscribers: make(map[uint]Subscriber),
		lock:        sync.Mutex{},
	}
}

type Notification struct {
	Type    string
	Message string
}

type Subscriber struct {
	user    model.User
	channel chan Notification
}

type Broker struct {
	subscribers map[uint]Subscriber
	lock        sync.Mutex
}

func (b *Broker) Subscribe(user model.User) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.subscribers[user.ID] = Subscriber{
		user:    user,
		channel: make(chan Notification, 16),
	}
}

func (b *Broker) Unsubscribe(id uint) {
	b.lock.Lock()
	defer b.lock.Unlock()
	if subscriber, ok := b.subscribers[id]; ok {
		close(subscriber.channel)
		delete(b.subscribers, id)
	}
}

func (b *Broker) Subscribers() []model.User {
	b.lock.Lock()
	defer b.lock.Unlock()
	keys := maps.Keys(b.subscribers)
	subscribers := make([]model.User, len(keys))
	for i, key := range keys {
		subscribers[i] = b.subscribers[key].user
	}
	return subscribers
}

func (b *Broker) Send(id uint, notification Notification) bool {
	b.lock.Lock()
	defer b.lock.Unlock()
	subscriber, ok := b.subscribers[id]
	if !ok {
		return false
	}

	// Unsubscribe closes the channel under the same lock, so the send has to
	// stay inside the critical section. It cannot block: a subscriber with a
	// full channel is dropped rather than blocked on, a slow admin dashboard
	// must not stall signup requests.
	select {
	case subscriber.channel <- notification:
		return true
	default:
		return false
	}
}

func (b *Broker) Receive(id uint) (Notification, bool) {
	b.lock.Lock()
	subscriber, ok := b.subscribers[id]
	b.lock.Unlock()
	if !ok {
		return Notification{}, false
	}

	notification, open := <-subscriber.channel
	return notification, open
}

func (b *Broker) Broadcast(notification Notification) {
	for _, user := range b.Subscribers() {
		b.Send(user.ID, notification)
	}
}

// SignupReceived broadcasts a resident's new or rejoined signup.
func (b *Broker) SignupReceived(event *model.Event, user *model.User) {
	b.Broadcast(Notification{
		Type:    TypeSignupReceived,
		Message: fmt.Sprintf("%s signed up for %s", user.Name, event.Title),
	})
}

// SignupCanceled broadcasts a resident's cancellation.
func (b *Broker) SignupCanceled(event *model.Event, user *model.User) {
	b.Broadcast(Notification{
		Type:    TypeSignupCanceled,
		Message: fmt.Sprintf("%s canceled their signup for %s", user.Name, event.Title),
	})
}
