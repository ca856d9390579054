package pool

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPool_ResetOnPut(t *testing.T) {
	p := NewPool(func() []int { return make([]int, 0, 4) }, func(s *[]int) { *s = (*s)[:0] })

	s := p.Get()
	s = append(s, 1, 2, 3)
	p.Put(s)

	stats := p.Stats()
	assert.Equal(t, int64(1), stats.Gets)
	assert.Equal(t, int64(1), stats.Puts)
	assert.Equal(t, int64(1), stats.Resets)
	assert.Equal(t, int64(1), stats.News)
}

func TestPool_NilReset(t *testing.T) {
	p := NewPool(func() string { return "fresh" }, nil)
	p.Put(p.Get())
	assert.Equal(t, int64(0), p.Stats().Resets)
}

func TestStats_HitRate(t *testing.T) {
	assert.Equal(t, 0.0, Stats{}.HitRate())
	assert.InDelta(t, 0.75, Stats{Gets: 4, News: 1}.HitRate(), 1e-9)
}

func TestByteBufferPool_ReturnsEmptyBuffers(t *testing.T) {
	buf := ByteBufferPool.Get()
	buf.WriteString("payload")
	ByteBufferPool.Put(buf)

	again := ByteBufferPool.Get()
	defer ByteBufferPool.Put(again)
	assert.Zero(t, again.Len())
}

func TestByteBufferPool_DropsOversizedBuffers(t *testing.T) {
	big := bytes.NewBuffer(make([]byte, 0, maxPooledBuffer*2))
	reset := big
	ByteBufferPool.reset(&reset)
	assert.NotSame(t, big, reset)
	assert.LessOrEqual(t, reset.Cap(), maxPooledBuffer)
}

func TestByteBufferPool_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			buf := ByteBufferPool.Get()
			buf.WriteString("x")
			assert.Equal(t, 1, buf.Len())
			ByteBufferPool.Put(buf)
		}()
	}
	wg.Wait()
}
