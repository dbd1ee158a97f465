// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package rules

import (
	"sync/atomic"
)

// Resolver hands out the active ruleset. Callers take one snapshot with
// Current per operation and use it throughout, so a concurrent Swap is seen
// either entirely or not at all.
type Resolver struct {
	current atomic.Pointer[Ruleset]
}

// NewResolver starts from rs, or from the defaults when rs is nil.
func NewResolver(rs *Ruleset) *Resolver {
	if rs == nil {
		rs = Defaults()
	}
	r := &Resolver{}
	r.current.Store(rs)
	return r
}

func (r *Resolver) Current() *Ruleset {
	return r.current.Load()
}

// Swap installs rs and returns the previous ruleset. A nil rs is ignored.
func (r *Resolver) Swap(rs *Ruleset) *Ruleset {
	if rs == nil {
		return r.current.Load()
	}
	return r.current.Swap(rs)
}
