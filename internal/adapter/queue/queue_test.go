package queue

import (
	"encoding/json"
	"errors"
	"testing"
)

type recordingQueue struct {
	subject string
	data    []byte
	err     error
}

func (q *recordingQueue) Publish(subject string, data []byte) error {
	q.subject, q.data = subject, data
	return q.err
}

func (q *recordingQueue) Subscribe(string, func([]byte) error) error { return nil }

func (q *recordingQueue) Close() error { return nil }

func TestPublishJSON(t *testing.T) {
	q := &recordingQueue{}

	if err := PublishJSON(q, "banking.test", map[string]string{"id": "1"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if q.subject != "banking.test" {
		t.Errorf("expected subject 'banking.test', got %q", q.subject)
	}
	var got map[string]string
	if err := json.Unmarshal(q.data, &got); err != nil || got["id"] != "1" {
		t.Errorf("unexpected payload %s (%v)", q.data, err)
	}
}

func TestPublishJSON_Errors(t *testing.T) {
	q := &recordingQueue{err: errors.New("closed")}
	if err := PublishJSON(q, "s", 1); err == nil {
		t.Error("expected publish error to propagate")
	}

	if err := PublishJSON(&recordingQueue{}, "s", make(chan int)); err == nil {
		t.Error("expected encode error")
	}
}
