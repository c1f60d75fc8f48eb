// Package aop 提供调用拦截相关的子包。
//
// 子包列表：
//   - xpointcut: 连接点与切点（方法名通配、命名空间前缀、切点表达式）
//   - xintercept: 调用描述与拦截链，先注册的拦截器在最外层
//   - xproxy: 按接口或具体类型生成替身，把方法调用分派到拦截链
//   - xadvice: 通用增强：耗时、结果缓存、重试、熔断
//   - xautowrap: 对象构造完成后按命名空间前缀自动包装
//
// 设计原则：
//   - 替身对调用方透明：参数、返回值、错误、panic 原样传递
//   - 拦截链在替身创建时确定，之后只读
package aop
