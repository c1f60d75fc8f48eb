package orderv1

// IllegalStateError 仓储处于无法保存的状态
type IllegalStateError struct {
	Msg string
}

func (e *IllegalStateError) Error() string { return e.Msg }

// IllegalArgumentError 商品 ID 不合法
type IllegalArgumentError struct {
	ItemID string
}

func (e *IllegalArgumentError) Error() string { return e.ItemID }
