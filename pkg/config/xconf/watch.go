package xconf

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 100 * time.Millisecond

// WatchCallback 重载后回调，err 非 nil 表示重载或监视出错（旧配置仍生效）
type WatchCallback func(cfg Config, err error)

// WatchOption 监视选项
type WatchOption func(*Watcher)

// WithDebounce 防抖时间，窗口内的多次变更只重载一次，默认 100ms
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// Watcher 配置文件监视器
//
// Stop 返回后不再有回调执行。
type Watcher struct {
	cfg      *koanfConfig
	fs       *fsnotify.Watcher
	callback WatchCallback
	debounce time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	started bool
	stopped bool
	done    chan struct{}
	wg      sync.WaitGroup
}

// Watch 为文件配置创建监视器，需调用 Start/StartAsync 开始监视
//
// 监视的是文件所在目录：编辑器常以“写临时文件再 rename”的方式保存。
func Watch(cfg Config, callback WatchCallback, opts ...WatchOption) (*Watcher, error) {
	kc, ok := cfg.(*koanfConfig)
	if !ok {
		return nil, fmt.Errorf("xconf: unsupported config type %T", cfg)
	}
	if kc.isBytes {
		return nil, ErrNotReloadable
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("xconf: create watcher: %w", err)
	}
	dir := filepath.Dir(kc.path)
	if err := fsw.Add(dir); err != nil {
		return nil, errors.Join(fmt.Errorf("xconf: watch %s: %w", dir, err), fsw.Close())
	}

	w := &Watcher{
		cfg:      kc,
		fs:       fsw,
		callback: callback,
		debounce: defaultDebounce,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	return w, nil
}

// Start 阻塞运行监视循环，直到 Stop
func (w *Watcher) Start() {
	if !w.markStarted() {
		return
	}
	defer w.wg.Done()
	w.run()
}

// StartAsync 在后台 goroutine 中运行监视循环
func (w *Watcher) StartAsync() {
	if !w.markStarted() {
		return
	}
	go func() {
		defer w.wg.Done()
		w.run()
	}()
}

func (w *Watcher) markStarted() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started || w.stopped {
		return false
	}
	w.started = true
	w.wg.Add(1)
	return true
}

// Stop 停止监视并等待循环与进行中的重载结束，幂等
//
// 不要在回调中调用 Stop，回调本身由 Stop 等待。
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	if w.timer != nil && w.timer.Stop() {
		// 定时器未触发，对应的 wg 计数在这里归还
		w.wg.Done()
	}
	w.timer = nil
	close(w.done)
	w.mu.Unlock()

	err := w.fs.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) run() {
	name := filepath.Base(w.cfg.path)
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) == name && reloadable(ev) {
				w.schedule()
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.notify(fmt.Errorf("xconf: watch error: %w", err))
		}
	}
}

// reloadable 直接写入、新建与原子 rename 都可能意味着内容变化
func reloadable(ev fsnotify.Event) bool {
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}

// schedule 重置防抖定时器；每个挂起的定时器持有一个 wg 计数
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	if w.timer != nil && w.timer.Stop() {
		w.wg.Done()
	}
	w.wg.Add(1)
	w.timer = time.AfterFunc(w.debounce, func() {
		defer w.wg.Done()
		select {
		case <-w.done:
			return
		default:
		}
		w.notify(w.cfg.Reload())
	})
}

func (w *Watcher) notify(err error) {
	if w.callback != nil {
		w.callback(w.cfg, err)
	}
}
