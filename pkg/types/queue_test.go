package types

import (
	"sync"
	"testing"
	"time"
)

func TestControlledQueue_FIFO(t *testing.T) {
	q := NewControlledQueue[int]()
	for i := 0; i < 5; i++ {
		if !q.Send(i) {
			t.Fatalf("Send(%d) = false on open queue", i)
		}
	}
	for want := 0; want < 5; want++ {
		got, ok := q.Recv()
		if !ok {
			t.Fatalf("Recv() ok = false, want true")
		}
		if got != want {
			t.Errorf("Recv() = %d, want %d", got, want)
		}
	}
}

func TestControlledQueue_AttemptRecvEmpty(t *testing.T) {
	q := NewControlledQueue[string]()
	canRecv, v, ok := q.attemptRecv(false)
	if canRecv || v != "" || !ok {
		t.Errorf("attemptRecv(false) = (%v, %q, %v), want (false, \"\", true)", canRecv, v, ok)
	}
}

func TestControlledQueue_CloseWakesReceiver(t *testing.T) {
	q := NewControlledQueue[int]()
	done := make(chan bool)
	go func() {
		_, ok := q.Recv()
		done <- ok
	}()

	time.Sleep(10 * time.Millisecond)
	q.Close()

	select {
	case ok := <-done:
		if ok {
			t.Error("Recv() after Close ok = true, want false")
		}
	case <-time.After(time.Second):
		t.Fatal("Recv() did not return after Close")
	}

	if q.Send(1) {
		t.Error("Send() after Close = true, want false")
	}
	q.Close()
}

func TestControlledQueue_Drain(t *testing.T) {
	q := NewControlledQueue[int]()
	q.Send(1)
	q.Send(2)
	q.Send(3)

	got := q.Drain()
	if len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Errorf("Drain() = %v, want [1 2 3]", got)
	}
	if rest := q.Drain(); len(rest) != 0 {
		t.Errorf("second Drain() = %v, want empty", rest)
	}
}

func TestControlledQueue_ConcurrentSend(t *testing.T) {
	q := NewControlledQueue[int]()
	const senders, each = 4, 100

	var wg sync.WaitGroup
	wg.Add(senders)
	for s := 0; s < senders; s++ {
		go func() {
			defer wg.Done()
			for i := 0; i < each; i++ {
				q.Send(i)
			}
		}()
	}

	received := 0
	for received < senders*each {
		if _, ok := q.Recv(); !ok {
			t.Fatal("Recv() ok = false on open queue")
		}
		received++
	}
	wg.Wait()
	if rest := q.Drain(); len(rest) != 0 {
		t.Errorf("%d items left after receiving all", len(rest))
	}
}
