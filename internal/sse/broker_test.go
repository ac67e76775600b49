package sse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSubscribeUnsubscribe(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	defer b.Close()
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients")
	}
	ch := b.Subscribe()
	if b.ClientCount() != 1 {
		t.Fatalf("expected 1 client")
	}
	b.Unsubscribe(ch)
	if b.ClientCount() != 0 {
		t.Fatalf("expected 0 clients after unsub")
	}
}

func TestPublishDelivery(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.Publish(Event{Type: "doc.created", Data: map[string]string{"name": "a.html"}})

	select {
	case msg := <-ch:
		s := string(msg)
		if !strings.Contains(s, "event: doc.created") {
			t.Errorf("missing event type in %q", s)
		}
		if !strings.Contains(s, `"name":"a.html"`) {
			t.Errorf("missing data in %q", s)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for message")
	}
}

func TestPublishManifestUpdated_Throttled(t *testing.T) {
	b := NewBroker(500 * time.Millisecond)
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	// First event broadcasts; the immediate second one is collapsed.
	b.PublishManifestUpdated(3, 2, 1, "aaa")
	b.PublishManifestUpdated(4, 2, 2, "bbb")

	var got []string
	deadline := time.After(300 * time.Millisecond)
collect:
	for {
		select {
		case msg := <-ch:
			got = append(got, string(msg))
		case <-deadline:
			break collect
		}
	}

	if len(got) != 1 {
		t.Fatalf("expected 1 throttled event, got %d: %v", len(got), got)
	}
	if !strings.Contains(got[0], "event: manifest.updated") {
		t.Errorf("unexpected event: %q", got[0])
	}
	if !strings.Contains(got[0], `"checksum":"aaa"`) {
		t.Errorf("expected first payload to win, got %q", got[0])
	}
}

func TestPublishManifestUpdated_AfterInterval(t *testing.T) {
	b := NewBroker(50 * time.Millisecond)
	defer b.Close()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	b.PublishManifestUpdated(1, 1, 0, "first")
	time.Sleep(80 * time.Millisecond)
	b.PublishManifestUpdated(2, 1, 1, "second")

	var count int
	deadline := time.After(300 * time.Millisecond)
	for count < 2 {
		select {
		case <-ch:
			count++
		case <-deadline:
			t.Fatalf("expected 2 events, got %d", count)
		}
	}
}

func TestServeHTTP_StreamsEvents(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/api/events", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		b.ServeHTTP(rec, req)
		close(done)
	}()

	// Wait for the subscriber to register, then publish.
	for i := 0; i < 50 && b.ClientCount() == 0; i++ {
		time.Sleep(10 * time.Millisecond)
	}
	b.Publish(Event{Type: "doc.deleted", Data: map[string]string{"name": "x.html"}})
	time.Sleep(50 * time.Millisecond)

	cancel()
	<-done

	body := rec.Body.String()
	if !strings.Contains(body, "event: doc.deleted") {
		t.Errorf("stream missing event, body = %q", body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("content type = %q", ct)
	}
}

func TestPublishAfterClose(t *testing.T) {
	b := NewBroker(100 * time.Millisecond)
	b.Close()

	// Must not panic or block.
	b.Publish(Event{Type: "doc.created"})
	b.PublishManifestUpdated(1, 1, 0, "x")
	if b.ClientCount() != 0 {
		t.Error("expected 0 clients after close")
	}
	ch := b.Subscribe()
	if _, ok := <-ch; ok {
		t.Error("subscribe after close should return closed channel")
	}
}
