package main

import "testing"

func TestCancelRunTimeout(t *testing.T) {
	called := false
	timeoutCancel = func() { called = true }

	cancelRunTimeout()

	if !called {
		t.Error("cancelRunTimeout() should invoke the stored cancel func")
	}
	if timeoutCancel != nil {
		t.Error("cancelRunTimeout() should clear the stored cancel func")
	}

	// Calling again with nothing installed must be a no-op
	cancelRunTimeout()
}
