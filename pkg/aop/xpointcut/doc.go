// Package xpointcut 提供切点（pointcut）匹配：判断一次方法调用是否需要被拦截。
//
// # 连接点
//
// [JoinPoint] 描述一次方法调用的静态身份：声明类型名、方法名、命名空间（包路径）。
// 匹配只看这三个字段，与参数、接收者状态无关，因此结果确定且可缓存。
//
// # 名称模式
//
// [SimpleMatch] 支持 '*' 通配，大小写敏感：
//
//	"Request"   精确匹配
//	"Order*"    前缀
//	"*Log"      后缀
//	"*Save*"    包含
//	"a*b*c"     多段
//
// # 表达式
//
// [Parse] 编译切点表达式：
//
//	include(github.com/acme/app) && !exclude(NoLog)
//	within(github.com/acme/app/...) && method(Order*, Save*)
//	type(*Repository) || method(Request*)
//
// 函数：include/within（命名空间前缀）、exclude（方法名不匹配）、method、type。
// 运算符优先级 ! > && > ||，支持括号。参数以逗号分隔，不需要引号。
//
// # 规则
//
// [Rule] 组合名称模式与表达式，两者同时存在时取交集。
package xpointcut
