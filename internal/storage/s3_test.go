package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttachmentKey(t *testing.T) {
	key := AttachmentKey(12, `C:\docs\Medical Report.PDF`)
	assert.True(t, strings.HasPrefix(key, "exceptions/12/"), key)
	assert.True(t, strings.HasSuffix(key, ".pdf"), key)
	assert.NotContains(t, key, "Medical")

	assert.NotEqual(t, AttachmentKey(1, "a.png"), AttachmentKey(1, "a.png"))
	assert.False(t, strings.Contains(AttachmentKey(1, "../../etc/passwd"), ".."))
}
