// CountingTemplate 包装模板并统计几何生成次数。
package mocks

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/saleemjadallah/visualz-backend-sub003/culture"
	"github.com/saleemjadallah/visualz-backend-sub003/parametric"
	"github.com/saleemjadallah/visualz-backend-sub003/scene"
	"github.com/saleemjadallah/visualz-backend-sub003/template"
)

// CountingTemplate 是 template.Template 的包装实现
type CountingTemplate struct {
	inner template.Template

	mu        sync.Mutex
	delay     time.Duration
	err       error
	panicWith any
	metaPanic any
	empty     bool

	calls atomic.Int64
}

// NewCountingTemplate 包装 inner
func NewCountingTemplate(inner template.Template) *CountingTemplate {
	return &CountingTemplate{inner: inner}
}

// WithDelay 让每次生成阻塞 d
func (c *CountingTemplate) WithDelay(d time.Duration) *CountingTemplate {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.delay = d
	return c
}

// WithError 让生成返回错误
func (c *CountingTemplate) WithError(err error) *CountingTemplate {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
	return c
}

// WithPanic 让生成 panic
func (c *CountingTemplate) WithPanic(v any) *CountingTemplate {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.panicWith = v
	return c
}

// WithMetadataPanic 让 GenerateMetadata panic，几何生成不受影响
func (c *CountingTemplate) WithMetadataPanic(v any) *CountingTemplate {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.metaPanic = v
	return c
}

// WithEmptyGeometry 让生成返回空几何
func (c *CountingTemplate) WithEmptyGeometry() *CountingTemplate {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.empty = true
	return c
}

// Calls 返回 GenerateGeometry 调用次数
func (c *CountingTemplate) Calls() int {
	return int(c.calls.Load())
}

func (c *CountingTemplate) Type() parametric.FurnitureType { return c.inner.Type() }

func (c *CountingTemplate) GenerateGeometry(p parametric.Parameters) (*scene.Geometry, error) {
	c.calls.Add(1)
	c.mu.Lock()
	delay, err, panicWith, empty := c.delay, c.err, c.panicWith, c.empty
	c.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if panicWith != nil {
		panic(panicWith)
	}
	if err != nil {
		return nil, err
	}
	if empty {
		return scene.New(string(c.inner.Type())), nil
	}
	return c.inner.GenerateGeometry(p)
}

func (c *CountingTemplate) GenerateMetadata(p parametric.Parameters) template.Metadata {
	c.mu.Lock()
	metaPanic := c.metaPanic
	c.mu.Unlock()
	if metaPanic != nil {
		panic(metaPanic)
	}
	return c.inner.GenerateMetadata(p)
}

func (c *CountingTemplate) CulturalProportions(cul parametric.Culture) culture.Proportions {
	return c.inner.CulturalProportions(cul)
}

func (c *CountingTemplate) ValidateParameters(p parametric.Parameters) bool {
	return c.inner.ValidateParameters(p)
}
