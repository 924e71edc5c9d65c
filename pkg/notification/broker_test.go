package notification

import (
	"testing"

	"github.com/apartment-life/backend/pkg/model"
	"github.com/stretchr/testify/assert"
)

func TestBroker_Subscribe(t *testing.T) {
	broker := NewBroker()

	broker.Subscribe(model.User{ID: 123})

	assert.Len(t, broker.subscribers, 1)
	assert.Equal(t, broker.subscribers[123].user.ID, uint(123))
}

func TestBroker_Subscribe_MultipleSubscribers(t *testing.T) {
	broker := NewBroker()

	broker.Subscribe(model.User{ID: 123})
	broker.Subscribe(model.User{ID: 321})

	assert.Len(t, broker.subscribers, 2)
	assert.Equal(t, broker.subscribers[123].user.ID, uint(123))
	assert.Equal(t, broker.subscribers[321].user.ID, uint(321))
}

func TestBroker_Unsubscribe(t *testing.T) {
	broker := NewBroker()
	broker.Subscribe(model.User{ID: 123})

	assert.Len(t, broker.subscribers, 1)

	broker.Unsubscribe(123)

	assert.Len(t, broker.subscribers, 0)
}

func TestBroker_Unsubscribe_UnknownSubscriber(t *testing.T) {
	broker := NewBroker()

	assert.NotPanics(t, func() {
		broker.Unsubscribe(123)
	})
}

func TestBroker_Receive(t *testing.T) {
	broker := NewBroker()
	broker.Subscribe(model.User{ID: 123})
	broker.Send(123, Notification{
		Type:    TypeSignupReceived,
		Message: "message",
	})

	notification, ok := broker.Receive(123)

	assert.True(t, ok)
	assert.Equal(t, TypeSignupReceived, notification.Type)
	assert.Equal(t, "message", notification.Message)
}

func TestBroker_Send_ConcurrentUnsubscribe(t *testing.T) {
	broker := NewBroker()
	user := model.User{ID: 123}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 10000; i++ {
			broker.Subscribe(user)
			broker.Unsubscribe(user.ID)
		}
	}()

	// A send racing an unsubscribe must not hit a closed channel.
	assert.NotPanics(t, func() {
		for i := 0; i < 10000; i++ {
			broker.Send(user.ID, Notification{Type: TypeSignupReceived, Message: "message"})
		}
		<-done
	})
}

func TestBroker_Send_UnknownSubscriber(t *testing.T) {
	broker := NewBroker()

	sent := broker.Send(123, Notification{Type: TypeSignupReceived, Message: "message"})

	assert.False(t, sent)
}

func TestBroker_SignupReceived_BroadcastsToAllSubscribers(t *testing.T) {
	broker := NewBroker()
	broker.Subscribe(model.User{ID: 123})
	broker.Subscribe(model.User{ID: 321})

	event := &model.Event{Title: "Rooftop BBQ"}
	user := &model.User{Name: "Alex"}
	broker.SignupReceived(event, user)

	first, ok := broker.Receive(123)
	assert.True(t, ok)
	assert.Equal(t, TypeSignupReceived, first.Type)
	assert.Equal(t, "Alex signed up for Rooftop BBQ", first.Message)

	second, ok := broker.Receive(321)
	assert.True(t, ok)
	assert.Equal(t, first, second)
}

func TestBroker_SignupCanceled(t *testing.T) {
	broker := NewBroker()
	broker.Subscribe(model.User{ID: 123})

	event := &model.Event{Title: "Rooftop BBQ"}
	user := &model.User{Name: "Alex"}
	broker.SignupCanceled(event, user)

	notification, ok := broker.Receive(123)

	assert.True(t, ok)
	assert.Equal(t, TypeSignupCanceled, notification.Type)
	assert.Equal(t, "Alex canceled their signup for Rooftop BBQ", notification.Message)
}
