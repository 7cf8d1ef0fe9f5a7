package channels

import "testing"

func TestBaseChannelAllowlist(t *testing.T) {
	open := NewBaseChannel("discord", nil)
	if !open.IsAllowed("anyone") {
		t.Error("empty allowlist should allow everyone")
	}

	restricted := NewBaseChannel("discord", []string{"111", "222"})
	if !restricted.IsAllowed("111") {
		t.Error("listed sender should be allowed")
	}
	if restricted.IsAllowed("333") {
		t.Error("unlisted sender should be rejected")
	}
	if restricted.IsAllowed("11") {
		t.Error("allowlist match must be exact, not a prefix")
	}
}

func TestBaseChannelRunning(t *testing.T) {
	ch := NewBaseChannel("discord", nil)
	if ch.IsRunning() {
		t.Error("channel should not start running")
	}
	ch.setRunning(true)
	if !ch.IsRunning() {
		t.Error("channel should report running after setRunning(true)")
	}
	ch.setRunning(false)
	if ch.IsRunning() {
		t.Error("channel should report stopped after setRunning(false)")
	}
}

func TestBaseChannelName(t *testing.T) {
	ch := NewBaseChannel("discord", nil)
	if ch.Name() != "discord" {
		t.Errorf("expected name discord, got %s", ch.Name())
	}
}
