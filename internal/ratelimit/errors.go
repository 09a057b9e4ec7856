// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ratelimit

import "errors"

// ErrBlocked is the error form of [Blocked] for callers that map decisions
// to transport statuses.
var ErrBlocked = errors.New("too many requests")
