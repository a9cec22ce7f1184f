package events

import "context"

// NoopPublisher используется, когда ни один транспорт не настроен
type NoopPublisher struct{}

func (n *NoopPublisher) Publish(context.Context, string, any) error {
	return nil
}

func (n *NoopPublisher) Close() error {
	return nil
}
