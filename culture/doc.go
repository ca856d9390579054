// 版权所有 2024 AgentFlow Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 culture 提供文化设计知识库：比例习惯、材料偏好与禁忌、
色板与图案、人体工学约定以及标志性文化元素。

默认数据库由嵌入的 profiles.yaml 构建（Default），也可以通过
Load 从任意 YAML 文档加载。AdjustForAuthenticity 在生成前
替换被文化回避的材料，并为传统风格补充标志性元素。
*/
package culture
