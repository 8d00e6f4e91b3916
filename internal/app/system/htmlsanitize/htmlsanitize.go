// Package htmlsanitize scrubs user-supplied HTML before it is stored.
// Feedback content is the only field that accepts markup; everything
// else is plain text. The policy is bluemonday's UGC policy: basic
// formatting, lists, headings, links (rel="nofollow") and images, with
// scripts, event handlers, frames, and forms stripped.
package htmlsanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

func ugcPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.UGCPolicy()
	})
	return policy
}

// Sanitize returns s with everything outside the UGC policy removed.
// Plain text passes through unchanged.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(ugcPolicy().Sanitize(s))
}
