// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package supervisor

// Message is an opaque, length-delimited payload exchanged with the
// native child process. Its contents belong to the child's own
// protocol (a protobuf schema in the reference implementation), which
// this module never parses; the one exception is SetCredentials,
// whose payload is built by the credentials package before being
// handed to Add as a Message.
type Message []byte

// Handler receives messages dispatched from the child and is notified
// exactly once when the supervisor enters its terminal failure state.
// OnMessage is called from the supervisor's dispatch goroutine;
// implementations that block for a long time delay delivery of
// subsequent messages but never the send or receive loops themselves.
// OnError is called by the failure arbiter on whichever goroutine
// triggered the terminal failure (a pump loop, the child's exit
// waiter, the connector, or a caller of Destroy or Add).
type Handler interface {
	OnMessage(msg Message)
	OnError(err error)
}

// FuncHandler adapts two functions into a Handler, the way
// credentials.ProviderFunc adapts a function into a Provider. Either
// field may be left nil, in which case the corresponding callback is a
// no-op.
type FuncHandler struct {
	OnMessageFunc func(Message)
	OnErrorFunc   func(error)
}

func (h FuncHandler) OnMessage(msg Message) {
	if h.OnMessageFunc != nil {
		h.OnMessageFunc(msg)
	}
}

func (h FuncHandler) OnError(err error) {
	if h.OnErrorFunc != nil {
		h.OnErrorFunc(err)
	}
}
