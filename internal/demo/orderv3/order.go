package orderv3

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
)

// 触发错误的商品 ID
const (
	ItemFailSave = "ex"
	ItemBad      = "bad-item"
)

var (
	// ErrSaveFailed 仓储保存失败
	ErrSaveFailed = errors.New("orderv3: save failed")
	// ErrBadItem 商品 ID 非法
	ErrBadItem = errors.New("orderv3: bad item")
)

type saver interface {
	Save(ctx context.Context, itemID string) error
}

type orderer interface {
	OrderItem(ctx context.Context, itemID string) error
}

// OrderController 入口
type OrderController struct {
	service orderer
}

// NewOrderController 创建控制器
func NewOrderController(service orderer) *OrderController {
	return &OrderController{service: service}
}

// Request 下单并返回 "ok"
func (c *OrderController) Request(ctx context.Context, itemID string) (string, error) {
	if err := c.service.OrderItem(ctx, itemID); err != nil {
		return "", err
	}
	return "ok", nil
}

// NoLog 不在追踪范围内的入口
func (c *OrderController) NoLog() string { return "ok" }

// OrderService 下单
type OrderService struct {
	repo saver
}

// NewOrderService 创建服务
func NewOrderService(repo saver) *OrderService {
	return &OrderService{repo: repo}
}

// OrderItem 校验商品后保存
func (s *OrderService) OrderItem(ctx context.Context, itemID string) error {
	if itemID == ItemBad {
		return fmt.Errorf("%w: %s", ErrBadItem, itemID)
	}
	return s.repo.Save(ctx, itemID)
}

// OrderRepository 内存仓储
type OrderRepository struct {
	saved atomic.Int64
}

// NewOrderRepository 创建仓储
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// Save 保存商品；商品 ID 为 "ex" 时失败
func (r *OrderRepository) Save(_ context.Context, itemID string) error {
	if itemID == ItemFailSave {
		return fmt.Errorf("%w: %s", ErrSaveFailed, itemID)
	}
	r.saved.Add(1)
	return nil
}

// Stored 返回成功保存的次数
func (r *OrderRepository) Stored() int64 { return r.saved.Load() }
