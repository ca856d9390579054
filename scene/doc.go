// 版权所有 2024 AgentFlow Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 scene 提供生成结果使用的轻量几何模型：节点树、索引三角网格以及
Box、Cylinder、Sphere 基本体。

PolygonCount 与 MemoryEstimate 直接由网格计算，是精确值而不是估算的
子节点数量。缓存中的 Geometry 会被共享，需要修改时请先 Clone。
*/
package scene
