package rabbitmq

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

const ExchangeKind = "topic"

// session is one connection with one channel on which exchange has been
// declared. Publisher and Consumer both build on it.
type session struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

func openSession(url, exchange string) (*session, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	s := &session{conn: conn, channel: ch}
	if err := ch.ExchangeDeclare(exchange, ExchangeKind, true, false, false, false, nil); err != nil {
		s.Close()
		return nil, fmt.Errorf("rabbitmq exchange declare %s: %w", exchange, err)
	}
	return s, nil
}

func (s *session) Close() {
	if s == nil {
		return
	}
	if s.channel != nil {
		s.channel.Close()
	}
	if s.conn != nil {
		s.conn.Close()
	}
}
