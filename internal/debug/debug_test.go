package debug

import "testing"

func TestAssert(t *testing.T) {
	Assert(true, "never fires")

	defer func() {
		r := recover()
		if Enabled && r == nil {
			t.Fatal("Assert(false) did not panic with assertions enabled")
		}
		if !Enabled && r != nil {
			t.Fatalf("Assert(false) panicked in release build: %v", r)
		}
	}()
	Assert(false, "value %d", 42)
}
