package collector

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickCollectorEmitsOnInterval(t *testing.T) {
	c := NewTickCollector(10 * time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream, err := c.GetEventStream(ctx)
	require.NoError(t, err)

	select {
	case event := <-stream:
		_, ok := event.AsTick()
		assert.True(t, ok)
	case <-time.After(time.Second):
		t.Fatal("tick collector did not emit within timeout")
	}
}

func TestTickCollectorStopsOnContextCancel(t *testing.T) {
	c := NewTickCollector(5 * time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	stream, err := c.GetEventStream(ctx)
	require.NoError(t, err)
	<-stream
	cancel()

	require.Eventually(t, func() bool {
		_, ok := <-stream
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestCronCollectorRejectsInvalidSpec(t *testing.T) {
	c := NewCronCollector("not a cron spec")
	_, err := c.GetEventStream(context.Background())
	require.Error(t, err)
}

func TestCronCollectorNameIsStable(t *testing.T) {
	c := NewCronCollector("* * * * *")
	assert.Equal(t, "CronCollector", c.Name())
}
