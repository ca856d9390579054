// Copyright 2026 AgentFlow Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license.

/*
Package testutil 提供生成管线测试的共享工具和辅助函数。

# 核心能力

  - 上下文辅助: TestContext / TestContextWithTimeout / CancelledContext，
    自动注册 Cleanup 防止泄漏
  - 异步断言: AssertEventuallyTrue
  - 数据工具: MustJSON / MustParseJSON
  - 指标工具: CounterValue 按名称与标签读取 Prometheus 计数器

# 子包

  - testutil/mocks: MockCompleter（模型调用）、CountingTemplate（计数模板），
    均支持 Builder 模式与错误注入
  - testutil/fixtures: 预置用户请求与模型响应样例
*/
package testutil
