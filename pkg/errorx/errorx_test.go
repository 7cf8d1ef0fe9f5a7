package errorx

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	err := New(Validation, "❌ Invalid wallet address.")
	assert.Equal(t, Validation, CodeOf(err))
	assert.Equal(t, Unknown, CodeOf(errors.New("boom")))
	assert.Equal(t, Unknown, CodeOf(nil))
}

func TestCodeOfWrapped(t *testing.T) {
	inner := Wrap(Storage, errors.New("disk full"), "🚫 Could not save your wallet.")
	outer := fmt.Errorf("link command: %w", inner)

	assert.Equal(t, Storage, CodeOf(outer))
	assert.Equal(t, "🚫 Could not save your wallet.", UserMessage(outer))
}

func TestUserMessageGenericFallback(t *testing.T) {
	msg := UserMessage(errors.New("nil pointer dereference"))
	assert.NotContains(t, msg, "nil pointer")
}

func TestErrorIncludesCauseForLogs(t *testing.T) {
	err := Wrap(Upstream, errors.New("status 503"), "🚫 Service unavailable.")
	assert.Contains(t, err.Error(), "status 503")
	assert.Contains(t, err.Error(), "upstream")
}
