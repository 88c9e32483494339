package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/hcms-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/hcms-backend-go/internal/pkg/page"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shiftPage(names ...string) page.Page[shift.ShiftResponse] {
	items := make([]shift.ShiftResponse, 0, len(names))
	for i, n := range names {
		items = append(items, shift.ShiftResponse{ID: int64(i + 1), Name: n})
	}
	return page.New(items, page.Request{Size: 20}, int64(len(items)))
}

func TestReduce_DropsStaleResults(t *testing.T) {
	s := Initial()
	s = Reduce(s, ShiftsRequested{Search: "n", Generation: 1})
	s = Reduce(s, ShiftsRequested{Search: "night", Generation: 2})
	assert.True(t, s.Shifts.Loading)

	s = Reduce(s, ShiftsLoaded{Page: shiftPage("Night"), Generation: 2})
	s = Reduce(s, ShiftsLoaded{Page: shiftPage("Normal", "Noon"), Generation: 1})

	assert.False(t, s.Shifts.Loading)
	require.Len(t, s.Shifts.Items, 1)
	assert.Equal(t, "Night", s.Shifts.Items[0].Name)
	assert.Equal(t, "night", s.Shifts.Search)

	s = Reduce(s, ShiftsFailed{Err: errors.New("boom"), Generation: 1})
	assert.Empty(t, s.Err)
}

func TestReduce_Failure(t *testing.T) {
	s := Reduce(Initial(), ShiftsRequested{Generation: 1})
	s = Reduce(s, ShiftsFailed{Generation: 1})
	assert.False(t, s.Shifts.Loading)
	assert.Equal(t, "Failed to load shifts", s.Err)

	s = Reduce(s, ErrorCleared{})
	assert.Empty(t, s.Err)
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	before := Reduce(Initial(), ShiftsRequested{Generation: 1})
	before = Reduce(before, ShiftsLoaded{Page: shiftPage("Regular", "Night"), Generation: 1})
	selected := before.Shifts.Items[0]
	before = Reduce(before, ShiftSelected{Shift: &selected})

	after := Reduce(before, ShiftUpdated{Shift: shift.ShiftResponse{ID: 1, Name: "Day"}})
	after = Reduce(after, ShiftDeleted{ID: 2})
	after = Reduce(after, ShiftCreated{Shift: shift.ShiftResponse{ID: 3, Name: "Swing"}})

	assert.Equal(t, "Regular", before.Shifts.Items[0].Name)
	assert.Len(t, before.Shifts.Items, 2)
	assert.Equal(t, "Regular", before.SelectedShift.Name)

	require.Len(t, after.Shifts.Items, 2)
	assert.Equal(t, "Swing", after.Shifts.Items[0].Name)
	assert.Equal(t, "Day", after.Shifts.Items[1].Name)
	assert.Equal(t, "Day", after.SelectedShift.Name)

	after = Reduce(after, ShiftDeleted{ID: 1})
	assert.Nil(t, after.SelectedShift)
}

func TestStore_DispatchAndSubscribe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	st := New(ctx, Initial())

	sub, unsubscribe := st.Subscribe()
	first := <-sub
	assert.False(t, first.Shifts.Loading)

	st.Dispatch(ShiftsRequested{Search: "night", Generation: 1})
	select {
	case s := <-sub:
		assert.True(t, s.Shifts.Loading)
	case <-time.After(time.Second):
		t.Fatal("no snapshot published")
	}

	st.Dispatch(ShiftsLoaded{Page: shiftPage("Night"), Generation: 1})
	assert.Equal(t, "Night", st.State().Shifts.Items[0].Name)

	unsubscribe()
	for range sub {
	}
	_, open := <-sub
	assert.False(t, open)

	cancel()
	<-st.Done()
	st.Dispatch(ErrorCleared{})
	assert.Equal(t, State{}, st.State())
}

func TestStore_SlowSubscriberSeesLatest(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	st := New(ctx, Initial())

	sub, unsubscribe := st.Subscribe()
	defer unsubscribe()

	for gen := uint64(1); gen <= 5; gen++ {
		st.Dispatch(ShiftsRequested{Generation: gen})
	}
	_ = st.State()

	s := <-sub
	assert.Equal(t, uint64(5), s.Shifts.Generation)
}
