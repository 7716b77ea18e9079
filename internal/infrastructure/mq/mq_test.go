package mq

import (
	"context"
	"testing"
	"time"

	myconfig "share_party_server/internal/config"

	"github.com/segmentio/kafka-go"
)

func TestInitFallsBackToLogPublisher(t *testing.T) {
	p := Init(&myconfig.KafkaConfig{MessageMode: "none"})
	if _, ok := p.(logPublisher); !ok {
		t.Fatalf("publisher = %T, want logPublisher", p)
	}
	if err := p.Publish(context.Background(), PartyEvent{Type: "join_requested", PartyId: 1}); err != nil {
		t.Fatalf("log publisher should never fail: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestNewKafkaPublisher(t *testing.T) {
	conf := &myconfig.KafkaConfig{
		MessageMode: "kafka",
		HostPort:    "127.0.0.1:9092",
		EventTopic:  "party_events",
		Timeout:     3,
	}
	var p EventPublisher = NewKafkaPublisher(conf)
	k, ok := p.(*kafkaPublisher)
	if !ok {
		t.Fatalf("publisher = %T, want *kafkaPublisher", p)
	}
	if k.writer.Topic != "party_events" {
		t.Fatalf("topic = %s", k.writer.Topic)
	}
	if k.writer.Addr.String() != "127.0.0.1:9092" {
		t.Fatalf("addr = %s", k.writer.Addr.String())
	}
	if _, ok := k.writer.Balancer.(*kafka.Hash); !ok {
		t.Fatalf("balancer = %T, want *kafka.Hash", k.writer.Balancer)
	}
	if k.writer.WriteTimeout != 3*time.Second {
		t.Fatalf("write timeout = %v", k.writer.WriteTimeout)
	}
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
}
