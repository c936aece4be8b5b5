package stream

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/mio-arcade/internal/core"
	"github.com/vovakirdan/mio-arcade/internal/engine"
	"github.com/vovakirdan/mio-arcade/internal/mio"
)

// waitFor polls a condition until it returns true or timeout expires.
func waitFor(t *testing.T, timeout time.Duration, condition func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timeout waiting for: %s", msg)
}

func TestBroadcasterDropsForSlowSubscriber(t *testing.T) {
	b := NewBroadcaster(3)
	sub := b.Subscribe()

	for i := range 100 {
		b.Publish(Message{Event: engine.Event{Frame: i}})
	}
	if len(sub) != cap(sub) {
		t.Errorf("expected full buffer of %d, got %d", cap(sub), len(sub))
	}
	recent := b.Recent()
	if len(recent) != 3 || recent[0].Event.Frame != 97 {
		t.Errorf("expected last 3 messages retained, got %+v", recent)
	}

	b.Unsubscribe(sub)
	b.Unsubscribe(sub)
	if b.SubscriberCount() != 0 {
		t.Errorf("expected no subscribers, got %d", b.SubscriberCount())
	}
}

func TestWebSocketStreamsPlayerEvents(t *testing.T) {
	b := NewBroadcaster(2)
	server := httptest.NewServer(Handler(b, log.New(io.Discard)))
	defer server.Close()

	p := engine.NewPlayer(engine.Config{})
	b.Attach(p)
	id := p.Load(&mio.GameScript{Name: "LIVE", Length: mio.LengthShort})

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer conn.Close()

	waitFor(t, 2*time.Second, func() bool { return b.SubscriberCount() == 1 }, "subscriber registered")
	p.Tick(id, 20*time.Millisecond, core.Pointer{})

	var got []Message
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for len(got) < 3 {
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("failed to read message: %v", err)
		}
		var m Message
		if err := json.Unmarshal(data, &m); err != nil {
			t.Fatalf("failed to unmarshal message: %v", err)
		}
		got = append(got, m)
	}

	want := []engine.EventKind{engine.EventLoaded, engine.EventPlaying, engine.EventFrameUpdate}
	for i, kind := range want {
		if got[i].Event.Kind != kind {
			t.Errorf("message %d: expected %v, got %v", i, kind, got[i].Event.Kind)
		}
	}
	if got[2].Frame == nil || got[2].Frame.Frame != 1 {
		t.Errorf("expected frame update to carry snapshot of frame 1, got %+v", got[2].Frame)
	}
	if got[2].Event.EndFrame != 240 {
		t.Errorf("expected end frame 240, got %d", got[2].Event.EndFrame)
	}
}
