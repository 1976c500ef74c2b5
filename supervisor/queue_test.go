// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package supervisor

import (
	"testing"
	"time"

	"github.com/aws-kpl-go/kpl-supervisor/lib/testutil"
)

func TestQueuePutTakeFIFOOrder(t *testing.T) {
	q := newMessageQueue()
	q.put(Message("first"))
	q.put(Message("second"))
	q.put(Message("third"))

	for _, want := range []string{"first", "second", "third"} {
		msg, ok := q.take()
		if !ok {
			t.Fatalf("take() returned ok=false, want message %q", want)
		}
		if string(msg) != want {
			t.Errorf("take() = %q, want %q", msg, want)
		}
	}
}

func TestQueueTakeBlocksUntilPut(t *testing.T) {
	q := newMessageQueue()
	result := make(chan Message, 1)

	go func() {
		msg, ok := q.take()
		if !ok {
			return
		}
		result <- msg
	}()

	select {
	case <-result:
		t.Fatal("take() returned before any message was put")
	case <-time.After(50 * time.Millisecond):
	}

	q.put(Message("arrived"))

	msg := testutil.RequireReceive(t, result, 5*time.Second, "waiting for take() to unblock after put")
	if string(msg) != "arrived" {
		t.Errorf("take() = %q, want %q", msg, "arrived")
	}
}

func TestQueueCloseUnblocksTake(t *testing.T) {
	q := newMessageQueue()
	done := make(chan bool, 1)

	go func() {
		_, ok := q.take()
		done <- ok
	}()

	select {
	case <-done:
		t.Fatal("take() returned before close")
	case <-time.After(50 * time.Millisecond):
	}

	q.close()

	if ok := testutil.RequireReceive(t, done, 5*time.Second, "waiting for take() to unblock after close"); ok {
		t.Error("take() returned ok=true on an empty closed queue")
	}
}

func TestQueueCloseDrainsRemainingItemsFirst(t *testing.T) {
	q := newMessageQueue()
	q.put(Message("pending"))
	q.close()

	msg, ok := q.take()
	if !ok {
		t.Fatal("take() should drain an item queued before close")
	}
	if string(msg) != "pending" {
		t.Errorf("take() = %q, want %q", msg, "pending")
	}

	_, ok = q.take()
	if ok {
		t.Error("take() should report ok=false once the closed queue is drained")
	}
}

func TestQueuePutAfterCloseIsNoOp(t *testing.T) {
	q := newMessageQueue()
	q.close()
	q.put(Message("too late"))

	if n := q.len(); n != 0 {
		t.Errorf("len() = %d after put following close, want 0", n)
	}
}

func TestQueueLenReflectsPendingCount(t *testing.T) {
	q := newMessageQueue()
	if n := q.len(); n != 0 {
		t.Fatalf("len() = %d on empty queue, want 0", n)
	}
	q.put(Message("a"))
	q.put(Message("b"))
	if n := q.len(); n != 2 {
		t.Fatalf("len() = %d, want 2", n)
	}
	q.take()
	if n := q.len(); n != 1 {
		t.Fatalf("len() = %d after one take, want 1", n)
	}
}
