package relay

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	channel string
	message interface{}
}

func (f *fakeRedis) Publish(_ context.Context, channel string, message interface{}) *redis.IntCmd {
	f.channel = channel
	f.message = message
	return redis.NewIntResult(1, nil)
}

type fakeKafka struct {
	msgs   []kafka.Message
	closed bool
}

func (f *fakeKafka) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeKafka) Close() error {
	f.closed = true
	return nil
}

type fakeNats struct {
	subject string
	data    []byte
	drained bool
}

func (f *fakeNats) Publish(subject string, data []byte) error {
	f.subject = subject
	f.data = data
	return nil
}

func (f *fakeNats) Drain() error {
	f.drained = true
	return nil
}

func TestRedisSink_PublishesOnEventChannel(t *testing.T) {
	client := &fakeRedis{}
	sink := NewRedisSink(client, "")

	require.NoError(t, sink.Send(context.Background(), Message{Event: "new-payment", Key: "p1", Body: []byte(`{}`)}))

	assert.Equal(t, "payhook:new-payment", client.channel)
	assert.Equal(t, []byte(`{}`), client.message)
	assert.Equal(t, "redis", sink.Name())
}

func TestKafkaSink_KeysByPaymentID(t *testing.T) {
	w := &fakeKafka{}
	sink := &KafkaSink{writer: w}

	require.NoError(t, sink.Send(context.Background(), Message{Event: "new-payment", Key: "p1", Body: []byte(`{"id":"p1"}`)}))
	require.NoError(t, sink.Send(context.Background(), Message{Event: "webhook-status", Body: []byte(`{"enabled":true}`)}))
	require.NoError(t, sink.Close())

	require.Len(t, w.msgs, 2)
	assert.Equal(t, []byte("p1"), w.msgs[0].Key)
	assert.Equal(t, []byte("webhook-status"), w.msgs[1].Key)
	assert.Equal(t, "event", w.msgs[0].Headers[0].Key)
	assert.Equal(t, []byte("new-payment"), w.msgs[0].Headers[0].Value)
	assert.True(t, w.closed)
}

func TestNatsSink_PublishesOnEventSubject(t *testing.T) {
	conn := &fakeNats{}
	sink := newNatsSink(conn, "payments")

	require.NoError(t, sink.Send(context.Background(), Message{Event: "new-payment", Body: []byte(`{}`)}))
	require.NoError(t, sink.Close())

	assert.Equal(t, "payments.new-payment", conn.subject)
	assert.True(t, conn.drained)
}
