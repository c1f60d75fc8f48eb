package xctx

import (
	"context"
	"log/slog"
)

// =============================================================================
// 调用帧 slog 集成
// =============================================================================

// AppendCallTraceAttrs 将 context 中活动事务的信息追加到现有切片。
// 没有活动事务时不追加任何字段。
func AppendCallTraceAttrs(attrs []slog.Attr, ctx context.Context) []slog.Attr {
	f := CallFrameFrom(ctx)
	if !f.Active() || f.TxID == "" {
		return attrs
	}
	return append(attrs,
		slog.String(KeyTxID, f.TxID),
		slog.Int(KeyTraceLevel, f.Depth),
	)
}

// CallTraceAttrs 从 context 提取调用树信息，转换为 slog.Attr 切片。
//
// 没有活动事务时返回 nil。每次调用会分配新切片，热路径建议使用 AppendCallTraceAttrs。
func CallTraceAttrs(ctx context.Context) []slog.Attr {
	attrs := AppendCallTraceAttrs(make([]slog.Attr, 0, callTraceFieldCount), ctx)
	if len(attrs) == 0 {
		return nil
	}
	return attrs
}
