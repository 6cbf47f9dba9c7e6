package queue

import (
	"encoding/json"
	"fmt"
)

// MessageQueue publishes dialog events to a broker.
type MessageQueue interface {
	Publish(subject string, data []byte) error
	Subscribe(subject string, handler func(data []byte) error) error
	Close() error
}

// PublishJSON encodes v and publishes it on subject.
func PublishJSON(mq MessageQueue, subject string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", subject, err)
	}
	return mq.Publish(subject, data)
}
