package sink

import "testing"

func TestForwardingBucket_DeliversToAllCallbacks(t *testing.T) {
	b := NewForwardingBucket()
	var got1, got2 map[string]string
	b.RegisterCallback(func(m map[string]string) { got1 = m })
	b.RegisterCallback(func(m map[string]string) { got2 = m })

	meta := map[string]string{"switch": "s1"}
	b.Deliver(meta)

	if got1["switch"] != "s1" || got2["switch"] != "s1" {
		t.Fatalf("expected both callbacks to receive the delivered metadata, got %v, %v", got1, got2)
	}
}

func TestCountingBucket_IncrementsAndReportsCount(t *testing.T) {
	b := NewCountingBucket()
	var last int
	b.RegisterCallback(func(n int) { last = n })

	b.Deliver(nil)
	b.Deliver(nil)
	b.Deliver(nil)

	if b.Count() != 3 {
		t.Fatalf("expected count 3, got %d", b.Count())
	}
	if last != 3 {
		t.Fatalf("expected last callback invocation to see count 3, got %d", last)
	}
}

func TestHookBucket_GroupsByDeclaredFields(t *testing.T) {
	b := NewHookBucket([]string{"switch"})
	var group map[string]string
	var meta map[string]string
	b.RegisterCallback(func(g, m map[string]string) {
		group = g
		meta = m
	})

	b.Deliver(map[string]string{"switch": "s1", "port": "p1"})

	if group["switch"] != "s1" {
		t.Fatalf("expected the group key to carry only the declared groupby fields, got %v", group)
	}
	if _, ok := group["port"]; ok {
		t.Fatalf("group key should not include fields outside groupby, got %v", group)
	}
	if meta["port"] != "p1" {
		t.Fatalf("expected full metadata to still reach the callback, got %v", meta)
	}
}
