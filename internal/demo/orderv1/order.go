package orderv1

import (
	"context"
	"time"
)

// 触发错误的商品 ID
const (
	ItemFailSave = "ex"
	ItemBad      = "bad-item"
)

// OrderController 入口
type OrderController interface {
	Request(ctx context.Context, itemID string) (string, error)
	NoLog() string
}

// OrderService 下单
type OrderService interface {
	OrderItem(ctx context.Context, itemID string) error
}

// OrderRepository 持久化
type OrderRepository interface {
	Save(ctx context.Context, itemID string) error
}

// Controller OrderController 的实现
type Controller struct {
	service OrderService
}

// NewController 创建控制器
func NewController(service OrderService) *Controller {
	return &Controller{service: service}
}

// Request 下单并返回 "ok"
func (c *Controller) Request(ctx context.Context, itemID string) (string, error) {
	if err := c.service.OrderItem(ctx, itemID); err != nil {
		return "", err
	}
	return "ok", nil
}

// NoLog 不在追踪范围内的入口
func (c *Controller) NoLog() string { return "ok" }

// Service OrderService 的实现
type Service struct {
	repo OrderRepository
}

// NewService 创建服务
func NewService(repo OrderRepository) *Service {
	return &Service{repo: repo}
}

// OrderItem 校验商品后保存
func (s *Service) OrderItem(ctx context.Context, itemID string) error {
	if itemID == ItemBad {
		return &IllegalArgumentError{ItemID: itemID}
	}
	return s.repo.Save(ctx, itemID)
}

// Repository OrderRepository 的实现，Save 模拟 delay 的 I/O 耗时
type Repository struct {
	delay time.Duration
}

// NewRepository 创建仓储
func NewRepository(delay time.Duration) *Repository {
	return &Repository{delay: delay}
}

// Save 保存商品；商品 ID 为 "ex" 时失败
func (r *Repository) Save(ctx context.Context, itemID string) error {
	if itemID == ItemFailSave {
		return &IllegalStateError{Msg: "save failed: " + itemID}
	}
	if r.delay <= 0 {
		return nil
	}
	t := time.NewTimer(r.delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var (
	_ OrderController = (*Controller)(nil)
	_ OrderService    = (*Service)(nil)
	_ OrderRepository = (*Repository)(nil)
)
