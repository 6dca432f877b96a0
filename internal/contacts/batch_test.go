package contacts_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-panchanga/internal/contacts"
	"github.com/tartampluch/go-panchanga/internal/engine"
)

// MockComputer simulates the engine.
type MockComputer struct {
	mock.Mock
}

func (m *MockComputer) ComputeChart(ctx context.Context, req engine.ChartRequest) (*engine.BirthChartRecord, error) {
	args := m.Called(ctx, req)
	rec, _ := args.Get(0).(*engine.BirthChartRecord)
	return rec, args.Error(1)
}

func profile(name string) contacts.Profile {
	return contacts.Profile{Name: name, Date: "2000-01-01", Time: "12:00:00", Place: "1,2"}
}

func TestBatch_Run(t *testing.T) {
	m := new(MockComputer)
	for _, n := range []string{"A", "B", "D"} {
		m.On("ComputeChart", mock.Anything, profile(n).Request()).Return(&engine.BirthChartRecord{Name: n}, nil)
	}
	m.On("ComputeChart", mock.Anything, profile("C").Request()).Return(nil, engine.ErrCityNotFound)

	in := []contacts.Profile{profile("A"), profile("B"), profile("C"), profile("D")}
	records, failures, err := contacts.Batch{Engine: m, Parallel: 2}.Run(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, "A", records[0].Name)
	assert.Equal(t, "B", records[1].Name)
	assert.Equal(t, "D", records[2].Name)

	require.Len(t, failures, 1)
	assert.Equal(t, "C", failures[0].Profile.Name)
	assert.ErrorIs(t, failures[0].Err, engine.ErrCityNotFound)
	m.AssertExpectations(t)
}

// slowComputer tracks peak concurrency.
type slowComputer struct {
	active, peak atomic.Int32
}

func (s *slowComputer) ComputeChart(ctx context.Context, req engine.ChartRequest) (*engine.BirthChartRecord, error) {
	n := s.active.Add(1)
	defer s.active.Add(-1)
	for {
		p := s.peak.Load()
		if n <= p || s.peak.CompareAndSwap(p, n) {
			break
		}
	}
	select {
	case <-time.After(10 * time.Millisecond):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return &engine.BirthChartRecord{Name: req.Name}, nil
}

func TestBatch_RespectsParallelLimit(t *testing.T) {
	s := &slowComputer{}
	var in []contacts.Profile
	for i := 0; i < 12; i++ {
		in = append(in, profile(string(rune('a'+i))))
	}

	records, failures, err := contacts.Batch{Engine: s, Parallel: 3}.Run(context.Background(), in)
	require.NoError(t, err)
	assert.Len(t, records, 12)
	assert.Empty(t, failures)
	assert.LessOrEqual(t, s.peak.Load(), int32(3))
}

func TestBatch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := contacts.Batch{Engine: &slowComputer{}}.Run(ctx, []contacts.Profile{profile("A")})
	assert.True(t, errors.Is(err, context.Canceled))
}
