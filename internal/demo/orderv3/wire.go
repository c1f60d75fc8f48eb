package orderv3

import (
	"context"
	"errors"

	"github.com/omeyang/xaop/pkg/aop/xautowrap"
)

// 容器中的对象名
const (
	NameRepository = "orderRepositoryV3"
	NameService    = "orderServiceV3"
	NameController = "orderControllerV3"
)

// Controller 调用方看到的控制器，替身与原始类型都满足它
type Controller interface {
	Request(ctx context.Context, itemID string) (string, error)
	NoLog() string
}

// Provide 把仓储、服务、控制器按依赖顺序注册到容器
func Provide(c *xautowrap.Container) error {
	return errors.Join(
		c.Provide(NameRepository, func(context.Context, *xautowrap.Container) (any, error) {
			return NewOrderRepository(), nil
		}),
		c.Provide(NameService, func(_ context.Context, c *xautowrap.Container) (any, error) {
			repo, err := xautowrap.Resolve[saver](c, NameRepository)
			if err != nil {
				return nil, err
			}
			return NewOrderService(repo), nil
		}),
		c.Provide(NameController, func(_ context.Context, c *xautowrap.Container) (any, error) {
			svc, err := xautowrap.Resolve[orderer](c, NameService)
			if err != nil {
				return nil, err
			}
			return NewOrderController(svc), nil
		}),
	)
}
