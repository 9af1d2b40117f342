package hub

import (
	"encoding/json"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func receive(t *testing.T, c Client) Event {
	t.Helper()
	select {
	case msg := <-c:
		var ev Event
		require.NoError(t, json.Unmarshal(msg, &ev))
		return ev
	default:
		t.Fatal("expected an event")
		return Event{}
	}
}

func TestHub_BroadcastIsPerTable(t *testing.T) {
	h := NewHub()
	regs := make(Client, 4)
	teams := make(Client, 4)
	h.Subscribe("registrations", regs)
	h.Subscribe("teams", teams)

	h.Publish("registrations", TypeInsert, 5)

	assert.Equal(t, Event{Table: "registrations", Type: TypeInsert, ID: 5}, receive(t, regs))
	assert.Empty(t, teams)
}

func TestHub_SlowClientDoesNotBlock(t *testing.T) {
	h := NewHub()
	slow := make(Client) // unbuffered, nobody reading
	fast := make(Client, 1)
	h.Subscribe("teams", slow)
	h.Subscribe("teams", fast)

	h.Publish("teams", TypeDelete, 1)

	assert.Equal(t, TypeDelete, receive(t, fast).Type)
}

func TestHub_UnsubscribeClosesClient(t *testing.T) {
	h := NewHub()
	c := make(Client, 1)
	h.Subscribe("users", c)
	assert.Equal(t, 1, h.Subscribers("users"))

	h.Unsubscribe("users", c)
	_, open := <-c
	assert.False(t, open)
	assert.Zero(t, h.Subscribers("users"))

	// second unsubscribe is a no-op, not a double close
	h.Unsubscribe("users", c)
}

func TestListener_Handle(t *testing.T) {
	h := NewHub()
	regs := make(Client, 4)
	teams := make(Client, 4)
	h.Subscribe("registrations", regs)
	h.Subscribe("teams", teams)

	l := NewListener(h, "", "table_changes", []string{"registrations", "teams"}, zap.NewNop())

	l.handle(&pq.Notification{Channel: "table_changes", Extra: `{"table":"registrations","type":"UPDATE","id":9}`})
	assert.Equal(t, Event{Table: "registrations", Type: TypeUpdate, ID: 9}, receive(t, regs))

	l.handle(&pq.Notification{Channel: "table_changes", Extra: `not json`})
	assert.Empty(t, regs)

	// reconnect
	l.handle(nil)
	assert.Equal(t, TypeRefresh, receive(t, regs).Type)
	assert.Equal(t, TypeRefresh, receive(t, teams).Type)
}
