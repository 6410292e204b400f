// SPDX-License-Identifier: Apache-2.0

package mocks

import (
	"context"
	"sync/atomic"

	"github.com/xataio/clinnorm/pkg/normalizer"
)

type RecordNormalizer struct {
	NormalizeFn func(ctx context.Context, i uint64, sample map[string]string) (*normalizer.Record, error)
	calls       atomic.Uint64
}

func (m *RecordNormalizer) Normalize(ctx context.Context, sample map[string]string) (*normalizer.Record, error) {
	return m.NormalizeFn(ctx, m.calls.Add(1), sample)
}

func (m *RecordNormalizer) GetCalls() uint64 {
	return m.calls.Load()
}
