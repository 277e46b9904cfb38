package event

import (
	"reflect"
	"testing"
)

func TestPublishOrderAndFirstWins(t *testing.T) {
	bus := NewBus[string]()
	var order []string

	bus.Subscribe(func(m string) bool {
		order = append(order, "a:"+m)
		return false
	})
	bus.Subscribe(func(m string) bool {
		order = append(order, "b:"+m)
		return m == "stop"
	})
	bus.Subscribe(func(m string) bool {
		order = append(order, "c:"+m)
		return false
	})

	if bus.Publish("go") {
		t.Error("Publish(go) reported handled")
	}
	if !bus.Publish("stop") {
		t.Error("Publish(stop) should be handled by b")
	}

	want := []string{"a:go", "b:go", "c:go", "a:stop", "b:stop"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}

	stats := bus.Stats()
	if stats.Published != 2 || stats.Handled != 1 {
		t.Errorf("Stats() = %+v", stats)
	}
}

func TestSubscribeFirst(t *testing.T) {
	bus := NewBus[int]()
	var got []string
	bus.Subscribe(func(int) bool { got = append(got, "late"); return false })
	bus.SubscribeFirst(func(int) bool { got = append(got, "early"); return false })

	bus.Publish(1)
	if !reflect.DeepEqual(got, []string{"early", "late"}) {
		t.Errorf("order = %v", got)
	}
}

func TestCancel(t *testing.T) {
	bus := NewBus[int]()
	calls := 0
	sub := bus.Subscribe(func(int) bool { calls++; return false })

	bus.Publish(1)
	sub.Cancel()
	sub.Cancel()
	bus.Publish(2)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if sub.IsActive() {
		t.Error("cancelled subscription reports active")
	}
	if bus.Len() != 0 {
		t.Errorf("Len() = %d, want 0", bus.Len())
	}
}

func TestReentrantPublish(t *testing.T) {
	bus := NewBus[int]()
	var seen []int
	bus.Subscribe(func(m int) bool {
		seen = append(seen, m)
		if m < 3 {
			bus.Publish(m + 1)
		}
		return false
	})

	bus.Publish(1)
	if !reflect.DeepEqual(seen, []int{1, 2, 3}) {
		t.Errorf("seen = %v", seen)
	}
}

func TestCancelDuringDelivery(t *testing.T) {
	bus := NewBus[int]()
	var second *Subscription[int]
	calls := 0
	bus.Subscribe(func(int) bool {
		second.Cancel()
		return false
	})
	second = bus.Subscribe(func(int) bool { calls++; return false })

	bus.Publish(1)
	if calls != 0 {
		t.Errorf("cancelled handler ran %d times", calls)
	}
}
