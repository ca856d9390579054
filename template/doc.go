// 版权所有 2024 AgentFlow Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 template 定义几何模板接口与默认的八种模板：椅子、长凳、沙发、
餐桌、茶几、灯具、安防系统与互动体验装置。

# 核心接口

  - Template：Type、GenerateGeometry、GenerateMetadata、
    CulturalProportions 与 ValidateParameters。
  - Registry：启动时由显式模板列表构建的只读注册表。
  - EstimateCost：按类型基价、材料、工艺、尺寸与装饰强度估算成本。

模板只接受已清洗的参数；圆形部件的分段数随工艺等级提高。
*/
package template
