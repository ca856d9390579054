// MockCompleter 的模型调用测试模拟实现。
//
// 支持固定响应、按次响应、延迟与错误注入。
package mocks

import (
	"context"
	"sync"
	"time"
)

// CompleterCall 记录单次调用
type CompleterCall struct {
	SystemPrompt string
	UserPrompt   string
}

// MockCompleter 是 llm.Completer 的模拟实现
type MockCompleter struct {
	mu sync.Mutex

	response  string
	responses []string
	err       error
	delay     time.Duration
	panicWith any

	calls []CompleterCall
}

// NewMockCompleter 创建新的 MockCompleter
func NewMockCompleter() *MockCompleter {
	return &MockCompleter{response: "{}"}
}

// WithResponse 设置固定响应
func (m *MockCompleter) WithResponse(response string) *MockCompleter {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.response = response
	return m
}

// WithResponses 设置按调用顺序返回的响应，用完后回到固定响应
func (m *MockCompleter) WithResponses(responses ...string) *MockCompleter {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append([]string(nil), responses...)
	return m
}

// WithError 设置返回错误
func (m *MockCompleter) WithError(err error) *MockCompleter {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

// WithDelay 设置响应延迟，期间遵守 ctx 取消
func (m *MockCompleter) WithDelay(d time.Duration) *MockCompleter {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delay = d
	return m
}

// WithPanic 让调用 panic
func (m *MockCompleter) WithPanic(v any) *MockCompleter {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.panicWith = v
	return m
}

// Complete 实现 llm.Completer
func (m *MockCompleter) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, CompleterCall{SystemPrompt: systemPrompt, UserPrompt: userPrompt})
	delay, err, panicWith := m.delay, m.err, m.panicWith
	response := m.response
	if len(m.responses) > 0 {
		response = m.responses[0]
		m.responses = m.responses[1:]
	}
	m.mu.Unlock()

	if panicWith != nil {
		panic(panicWith)
	}
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if err != nil {
		return "", err
	}
	return response, nil
}

// CallCount 返回调用次数
func (m *MockCompleter) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Calls 返回调用记录副本
func (m *MockCompleter) Calls() []CompleterCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]CompleterCall(nil), m.calls...)
}
