// 版权所有 2024 AgentFlow Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 material 提供材料目录与材料系统。

System.GetMaterial 按 (材料类型, 文化, 色板, 工艺等级) 解析材料并缓存在
有界 LRU 中；未知类型解析为中性默认材料。GenerateMaterials 产生主材料与
可选的次材料，ApplyMaterials 按网格槽位写入材料 ID。
*/
package material
