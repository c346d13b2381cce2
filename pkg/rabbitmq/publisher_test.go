package rabbitmq

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublish_NilPublisherIsNoop(t *testing.T) {
	var p *Publisher

	err := p.Publish("order.created", map[string]any{"order_id": 1})

	assert.NoError(t, err)
}

func TestPublish_UnmarshalablePayload(t *testing.T) {
	p := &Publisher{}

	err := p.Publish("order.created", make(chan int))

	assert.ErrorContains(t, err, "marshal payload")
}
