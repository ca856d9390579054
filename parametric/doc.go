// 版权所有 2024 AgentFlow Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 parametric 定义参数化生成管线的参数模型，以及把不可信输入
转换为可信参数的清洗规则。

# 概述

Parameters 是一件家具或体验装置的完整描述：类型、文化、尺寸、
风格、材料、色板与工艺等级。任何来自用户或 AI 的数据在进入
模板之前都必须经过 Sanitize 或 SanitizeMap。

# 核心接口

  - Sanitize：枚举回落默认值，数值夹紧到类型范围，集合去重截断。
  - SanitizeMap：接受 camelCase 与 snake_case 键的松散映射。
  - Fingerprint：清洗后按排序键序列化并取 SHA-256，作为缓存键。
  - UserFurnitureRequest：用户事件请求及其规范化。
  - ConstraintsFromRequest：从请求派生优化约束。

# 不变量

Sanitize 是幂等的，其输出总能通过 Validate。
*/
package parametric
