package xautowrap

import (
	"context"
	"errors"

	"github.com/omeyang/xaop/pkg/aop/xproxy"
)

const testNamespace = "github.com/omeyang/xaop/pkg/aop/xautowrap"

type Repo interface {
	Save(ctx context.Context, id string) error
}

type repo struct{ saved []string }

func (r *repo) Save(_ context.Context, id string) error {
	if id == "" {
		return errors.New("empty id")
	}
	r.saved = append(r.saved, id)
	return nil
}

type repoProxy struct{ xproxy.Stub }

func (p repoProxy) Save(ctx context.Context, id string) error {
	out := p.Dispatcher.Invoke("Save", ctx, id)
	return xproxy.Err(out, 0)
}

// unwrappable 命中前缀但既无接口桩也无具体类型桩
type unwrappable struct{}

func (unwrappable) Ping() {}

func init() {
	xproxy.RegisterInterface(func(s xproxy.Stub) Repo { return repoProxy{s} })
}
