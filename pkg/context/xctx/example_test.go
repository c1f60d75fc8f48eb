package xctx_test

import (
	"context"
	"fmt"

	"github.com/omeyang/xaop/pkg/context/xctx"
)

func ExampleEnterCall() {
	root := context.Background()

	outerCtx, _, outer := xctx.EnterCall(root, func() string { return "tx-1" })
	innerCtx, _, inner := xctx.EnterCall(outerCtx, nil)
	fmt.Println(xctx.TxID(innerCtx), outer, inner, xctx.CallLevel(innerCtx))

	// 调用返回后回到进入前的 ctx
	fmt.Printf("%q %d\n", xctx.TxID(root), xctx.CallLevel(root))
	// Output:
	// tx-1 0 1 2
	// "" 0
}
