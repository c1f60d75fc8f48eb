package orderv1

import (
	"context"
	"errors"
	"time"

	"github.com/omeyang/xaop/pkg/aop/xautowrap"
)

// 容器中的对象名
const (
	NameRepository = "orderRepositoryV1"
	NameService    = "orderServiceV1"
	NameController = "orderControllerV1"
)

// Provide 把仓储、服务、控制器按依赖顺序注册到容器
//
// 服务与控制器构造时从容器取依赖，拿到的是 Hook 处理后的正式实例。
func Provide(c *xautowrap.Container, delay time.Duration) error {
	return errors.Join(
		c.Provide(NameRepository, func(context.Context, *xautowrap.Container) (any, error) {
			return NewRepository(delay), nil
		}),
		c.Provide(NameService, func(_ context.Context, c *xautowrap.Container) (any, error) {
			repo, err := xautowrap.Resolve[OrderRepository](c, NameRepository)
			if err != nil {
				return nil, err
			}
			return NewService(repo), nil
		}),
		c.Provide(NameController, func(_ context.Context, c *xautowrap.Container) (any, error) {
			svc, err := xautowrap.Resolve[OrderService](c, NameService)
			if err != nil {
				return nil, err
			}
			return NewController(svc), nil
		}),
	)
}
