// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	natsserver "github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travisjeffery/go-dynaport"
)

func startNatsServer(t *testing.T) *natsserver.Server {
	t.Helper()
	ports := dynaport.Get(1)
	serv, err := natsserver.NewServer(&natsserver.Options{
		Host: "127.0.0.1",
		Port: ports[0],
	})

	require.NoError(t, err)

	ready := make(chan bool)
	go func() {
		ready <- true
		serv.Start()
	}()
	<-ready

	if !serv.ReadyForConnections(2 * time.Second) {
		t.Fatalf("nats-io server failed to start")
	}

	return serv
}

func TestNATS(t *testing.T) {
	t.Run("With updates published as JSON", func(t *testing.T) {
		ctx := context.TODO()
		srv := startNatsServer(t)
		t.Cleanup(srv.Shutdown)
		serverURL := fmt.Sprintf("nats://%s", srv.Addr().String())

		subscriber, err := nats.Connect(serverURL)
		require.NoError(t, err)
		t.Cleanup(subscriber.Close)

		received := make(chan *nats.Msg, 8)
		subscription, err := subscriber.ChanSubscribe("metrics.updates", received)
		require.NoError(t, err)
		t.Cleanup(func() { _ = subscription.Unsubscribe() })

		sink, err := NewNATS(ctx, serverURL, "metrics.updates")
		require.NoError(t, err)

		require.NoError(t, sink.RecordCounter("actors_created_total", map[string]string{"actor.class": "cartactor"}, 1))
		require.NoError(t, sink.RecordGauge("actors_active", nil, 42))
		require.NoError(t, sink.RecordTimer("processing_duration", nil, 15*time.Millisecond))
		require.NoError(t, sink.Close())

		samples := make(map[string]natsSample)
		for range 3 {
			select {
			case msg := <-received:
				var sample natsSample
				require.NoError(t, json.Unmarshal(msg.Data, &sample))
				samples[sample.Kind] = sample
			case <-time.After(2 * time.Second):
				t.Fatal("timed out waiting for published samples")
			}
		}

		counter := samples["counter"]
		assert.Equal(t, "actors_created_total", counter.Name)
		assert.Equal(t, "cartactor", counter.Tags["actor.class"])
		assert.EqualValues(t, 1, counter.Value)
		assert.NotZero(t, counter.At)

		gauge := samples["gauge"]
		assert.Equal(t, "actors_active", gauge.Name)
		assert.EqualValues(t, 42, gauge.Value)

		timer := samples["timer"]
		assert.Equal(t, "processing_duration", timer.Name)
		assert.EqualValues(t, (15 * time.Millisecond).Nanoseconds(), timer.Elapsed)
	})
	t.Run("With an empty server url", func(t *testing.T) {
		sink, err := NewNATS(context.TODO(), "", "metrics.updates")
		require.Error(t, err)
		assert.Nil(t, sink)
	})
	t.Run("With an empty subject", func(t *testing.T) {
		sink, err := NewNATS(context.TODO(), "nats://127.0.0.1:4222", "")
		require.Error(t, err)
		assert.Nil(t, sink)
	})
	t.Run("With an unreachable server", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.TODO(), 2*time.Second)
		defer cancel()
		sink, err := NewNATS(ctx, "nats://127.0.0.1:1", "metrics.updates")
		require.Error(t, err)
		assert.Nil(t, sink)
	})
}
