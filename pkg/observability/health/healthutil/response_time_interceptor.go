/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package healthutil

import (
	"context"
	"sync"
	"time"

	"github.com/alexliesenfeld/health"
)

// ResponseTimeState holds the last and the running average duration of one check.
type ResponseTimeState struct {
	LastResponseTime    time.Duration
	AverageResponseTime time.Duration
}

// ResponseTimeInterceptor records the duration of every check run into m, keyed by check name.
func ResponseTimeInterceptor(m map[string]ResponseTimeState) health.Interceptor {
	var mu sync.Mutex
	return func(next health.InterceptorFunc) health.InterceptorFunc {
		return func(ctx context.Context, name string, state health.CheckState) health.CheckState {
			start := time.Now()
			result := next(ctx, name, state)
			elapsed := time.Since(start)

			mu.Lock()
			defer mu.Unlock()

			avg := elapsed
			if prev, ok := m[name]; ok {
				avg = (prev.AverageResponseTime + elapsed) / 2 //nolint:mnd
			}

			m[name] = ResponseTimeState{
				LastResponseTime:    elapsed,
				AverageResponseTime: avg,
			}

			return result
		}
	}
}
