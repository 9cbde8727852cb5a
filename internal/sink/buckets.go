package sink

import (
	"fmt"
	"sync"
)

// ForwardingBucket re-delivers every captured packet to registered
// callbacks, unmodified. The reference analogue of Pyretic's FwdBucket.
type ForwardingBucket struct {
	mu        sync.Mutex
	callbacks []func(map[string]string)
}

func NewForwardingBucket() *ForwardingBucket { return &ForwardingBucket{} }

func (b *ForwardingBucket) Kind() Kind { return ForwardingKind }

func (b *ForwardingBucket) RegisterCallback(f func(map[string]string)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.callbacks = append(b.callbacks, f)
}

func (b *ForwardingBucket) Deliver(meta map[string]string) {
	b.mu.Lock()
	callbacks := append([]func(map[string]string){}, b.callbacks...)
	b.mu.Unlock()
	for _, f := range callbacks {
		f(meta)
	}
}

func (b *ForwardingBucket) String() string { return "fwd_bucket" }

// CountingBucket counts captured packets instead of forwarding their
// contents. The reference analogue of Pyretic's CountBucket.
type CountingBucket struct {
	mu        sync.Mutex
	count     int
	callbacks []func(int)
}

func NewCountingBucket() *CountingBucket { return &CountingBucket{} }

func (b *CountingBucket) Kind() Kind { return CountingKind }

func (b *CountingBucket) RegisterCallback(f func(int)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.callbacks = append(b.callbacks, f)
}

func (b *CountingBucket) Deliver(meta map[string]string) {
	b.mu.Lock()
	b.count++
	count := b.count
	callbacks := append([]func(int){}, b.callbacks...)
	b.mu.Unlock()
	for _, f := range callbacks {
		f(count)
	}
}

func (b *CountingBucket) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}

func (b *CountingBucket) String() string {
	return fmt.Sprintf("count_bucket(count=%d)", b.Count())
}

// HookBucket groups captured packets by the value of a fixed set of
// fields, invoking a callback with the group key and the packet's full
// metadata. The reference analogue of Pyretic's PathBucket grouping
// behavior for `hook` atoms.
type HookBucket struct {
	mu        sync.Mutex
	groupby   []string
	callbacks []func(group map[string]string, meta map[string]string)
}

func NewHookBucket(groupby []string) *HookBucket {
	return &HookBucket{groupby: append([]string(nil), groupby...)}
}

func (b *HookBucket) Kind() Kind { return HookKind }

func (b *HookBucket) RegisterCallback(f func(group map[string]string, meta map[string]string)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.callbacks = append(b.callbacks, f)
}

func (b *HookBucket) Deliver(meta map[string]string) {
	group := make(map[string]string, len(b.groupby))
	for _, field := range b.groupby {
		group[field] = meta[field]
	}
	b.mu.Lock()
	callbacks := append([]func(map[string]string, map[string]string){}, b.callbacks...)
	b.mu.Unlock()
	for _, f := range callbacks {
		f(group, meta)
	}
}

func (b *HookBucket) String() string {
	return fmt.Sprintf("hook_bucket(groupby=%v)", b.groupby)
}
