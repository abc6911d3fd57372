package common

import (
	"context"
	"fmt"
	"math"

	"github.com/brandboost-ai/brandboost/common/logger"
	"github.com/bytedance/gopkg/util/gopool"
)

var backgroundPool gopool.Pool

func init() {
	backgroundPool = gopool.NewPool("gopool.BackgroundPool", math.MaxInt32, gopool.NewConfig())
	backgroundPool.SetPanicHandler(func(ctx context.Context, i interface{}) {
		logger.SysError(fmt.Sprintf("panic in gopool.BackgroundPool: %v", i))
	})
}

// SafeGoroutine runs f on the background pool so a panic inside f cannot
// take the process down.
func SafeGoroutine(f func()) {
	backgroundPool.Go(f)
}
