// Copyright (c) AgentFlow Authors.
// Licensed under the MIT License.

/*
Package types 提供生成管线的全局共享错误类型。

# 概述

types 是最底层的公共包，不依赖任何内部包。parametric、analyzer、
pipeline、monitor 等上层模块通过统一的 ErrorCode 区分失败类别：
输入校验、模板分发、AI 依赖与基础设施。

# 核心类型

  - Error / ErrorCode：结构化错误，含 Retryable 标记与 Cause 链
  - Errorf：带格式化消息的构造函数

# 主要能力

  - 错误工具链：GetErrorCode / IsErrorCode / IsRetryable（支持 errors.As 解包）
*/
package types
