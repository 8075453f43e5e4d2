package kafka

import (
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

type Config struct {
	Addrs []string `envconfig:"KAFKA_ADDRS"`
	Topic string   `envconfig:"KAFKA_TOPIC" default:"circulation-events"`
}

func NewAsyncProducer(cfg Config) (sarama.AsyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForLocal
	defaultCfg.Producer.Return.Errors = true

	return sarama.NewAsyncProducer(cfg.Addrs, defaultCfg)
}

const (
	EventBorrow = "BORROW"
	EventReturn = "RETURN"
)

// Event mirrors a circulation activity for downstream consumers.
type Event struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	UserID int64  `json:"userId"`
	BookID int64  `json:"bookId"`
	Date   string `json:"date"`
}

func NewEvent(eventType string, userID, bookID int64) Event {
	return Event{
		ID:     uuid.NewString(),
		Type:   eventType,
		UserID: userID,
		BookID: bookID,
		Date:   time.Now().UTC().Format(time.DateOnly),
	}
}

type EventLog interface {
	Log(ev Event) error
}

type eventLog struct {
	producer sarama.AsyncProducer
	topic    string
}

func NewEventLog(producer sarama.AsyncProducer, topic string) *eventLog {
	return &eventLog{
		producer: producer,
		topic:    topic,
	}
}

func (l *eventLog) Log(ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{
		Topic: l.topic,
		Key:   sarama.StringEncoder(ev.ID),
		Value: sarama.StringEncoder(data),
	}
	l.producer.Input() <- msg
	return nil
}

type nopEventLog struct{}

// NopEventLog is used when no brokers are configured.
func NopEventLog() EventLog { return nopEventLog{} }

func (nopEventLog) Log(Event) error { return nil }
