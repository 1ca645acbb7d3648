package core

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fibernet/internal/blob"
	"fibernet/internal/infra/persistence/memory"
	"fibernet/pkg/domain"
)

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func sequentialIDs() domain.IDFunc {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%04d", n)
	}
}

type recordedOp struct {
	op      string
	success bool
}

type recordingMetrics struct {
	mu  sync.Mutex
	ops []recordedOp
}

func (m *recordingMetrics) Observe(_ context.Context, op string, success bool, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, recordedOp{op: op, success: success})
}

func (m *recordingMetrics) last() recordedOp {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ops[len(m.ops)-1]
}

func newTestService(t *testing.T, opts ...ServiceOption) *Service {
	t.Helper()
	store := memory.NewStore(NewDefaultRulesEngine(), memory.WithClock(func() time.Time { return testNow }), memory.WithIDFunc(sequentialIDs()))
	base := []ServiceOption{WithLatency(Latency{}), WithLogger(zap.NewNop()), WithBlobStore(blob.NewMemory())}
	return NewService(store, append(base, opts...)...)
}

func mustAddClient(t *testing.T, svc *Service, name string) Client {
	t.Helper()
	c, _, err := svc.AddClient(context.Background(), Client{Name: name, Address: "Rua " + name, Latitude: -23.5, Longitude: -46.6})
	require.NoError(t, err)
	return c
}

func mustAddBox(t *testing.T, svc *Service, code string) Box {
	t.Helper()
	b, _, err := svc.AddBox(context.Background(), Box{Code: code, Description: "CTO " + code, Latitude: -23.51, Longitude: -46.61})
	require.NoError(t, err)
	return b
}

func mustAddSwitch(t *testing.T, svc *Service, name string, ports int) Switch {
	t.Helper()
	sw, _, err := svc.AddSwitch(context.Background(), Switch{Name: name, Model: "S5720", ManagementIP: "10.0.0.1", TotalPorts: ports})
	require.NoError(t, err)
	return sw
}
