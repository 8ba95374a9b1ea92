package flow

import (
	"context"
	stderrors "errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSend_RangeThroughFilter(t *testing.T) {
	var got []uint64
	f := New[uint64]()
	f.Filter(func(n uint64) bool { return n > 300 }).Peep(func(n uint64) { got = append(got, n) })

	ctx := context.Background()
	if err := f.SendValues(ctx, 1, 99, 1, 2, 3, 4, 5); err != nil {
		t.Fatal(err)
	}
	if err := f.SendMany(ctx, Range[uint64](1, 499)); err != nil {
		t.Fatal(err)
	}

	want := slices.Collect(Range[uint64](301, 499))
	if len(want) != 199 {
		t.Fatalf("bad fixture: %d values", len(want))
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("filtered stream mismatch (-want +got):\n%s", diff)
	}
}

func TestSendMany_MatchesSequentialSend(t *testing.T) {
	build := func(rec *recorder) *Flow[int] {
		f := New[int]()
		f.Map(func(v int) int { return v * 10 }).Peep(rec.peep("x"))
		f.Filter(func(v int) bool { return v%2 == 1 }).Peep(rec.peep("odd"))
		return f
	}
	ctx := context.Background()
	values := []int{1, 2, 3, 4, 5}

	var seq recorder
	fs := build(&seq)
	for _, v := range values {
		if err := fs.Send(ctx, v); err != nil {
			t.Fatal(err)
		}
	}

	var many recorder
	fm := build(&many)
	if err := fm.SendMany(ctx, slices.Values(values)); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(seq.events, many.events); diff != "" {
		t.Errorf("SendMany diverged from Send (-send +many):\n%s", diff)
	}
}

func TestSendMany_Empty(t *testing.T) {
	var rec recorder
	f := New[int]()
	f.Peep(rec.peep("x"))
	if err := f.SendMany(context.Background(), Range(5, 1)); err != nil {
		t.Fatal(err)
	}
	if len(rec.events) != 0 {
		t.Errorf("expected no dispatch, got %v", rec.events)
	}
}

func TestRange(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		want     []int
	}{
		{"single", 3, 3, []int{3}},
		{"ascending", 1, 4, []int{1, 2, 3, 4}},
		{"negative", -2, 1, []int{-2, -1, 0, 1}},
		{"empty", 2, 1, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := slices.Collect(Range(tc.from, tc.to))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Range(%d, %d) mismatch (-want +got):\n%s", tc.from, tc.to, diff)
			}
		})
	}
}

func TestRange_StopsAtTypeMax(t *testing.T) {
	got := slices.Collect(Range[uint8](250, 255))
	if diff := cmp.Diff([]uint8{250, 251, 252, 253, 254, 255}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestRange_EarlyBreak(t *testing.T) {
	var got []int
	for v := range Range(1, 1000) {
		if v > 3 {
			break
		}
		got = append(got, v)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestDrain_Slice(t *testing.T) {
	var rec recorder
	f := New[int]()
	f.Peep(rec.peep("v"))

	if err := f.Drain(context.Background(), FromSlice([]int{3, 1, 2})); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"v:3", "v:1", "v:2"}, rec.events); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

type failingIter struct {
	after  int
	closed bool
}

var errSource = stderrors.New("source broke")

func (it *failingIter) Next(context.Context) (int, bool, error) {
	if it.after == 0 {
		return 0, false, errSource
	}
	it.after--
	return it.after, true, nil
}

func (it *failingIter) Close() error {
	it.closed = true
	return nil
}

func TestDrain_SourceError(t *testing.T) {
	var rec recorder
	f := New[int](WithName("drain"))
	f.Peep(rec.peep("v"))

	src := &failingIter{after: 2}
	err := f.Drain(context.Background(), src)
	if !stderrors.Is(err, errSource) {
		t.Fatalf("expected source error, got %v", err)
	}
	if !src.closed {
		t.Error("expected iterator to be closed")
	}
	if diff := cmp.Diff([]string{"v:1", "v:0"}, rec.events); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFromSeq_CloseStopsProducer(t *testing.T) {
	stopped := false
	seq := func(yield func(int) bool) {
		defer func() { stopped = true }()
		for i := 0; ; i++ {
			if !yield(i) {
				return
			}
		}
	}

	it := FromSeq[int](seq)
	ctx := context.Background()
	for want := 0; want < 3; want++ {
		v, ok, err := it.Next(ctx)
		if err != nil || !ok || v != want {
			t.Fatalf("Next() = %d, %v, %v; want %d, true, nil", v, ok, err, want)
		}
	}
	if err := it.Close(); err != nil {
		t.Fatal(err)
	}
	if !stopped {
		t.Error("expected producer to observe stop")
	}
}

func TestFromSeq_CancelledContext(t *testing.T) {
	it := FromSeq(Range(1, 10))
	defer it.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := it.Next(ctx); !stderrors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

type closeErrIter struct {
	Iterator[int]
	err error
}

func (it closeErrIter) Close() error { return it.err }

func TestConcat(t *testing.T) {
	var rec recorder
	f := New[int]()
	f.Filter(func(v int) bool { return v > 3 }).Peep(rec.peep("v"))

	src := Concat(FromSlice([]int{1, 9}), FromSlice[int](nil), FromSeq(Range(3, 5)))
	if err := f.Drain(context.Background(), src); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"v:9", "v:4", "v:5"}, rec.events); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestConcat_StopsAtSourceError(t *testing.T) {
	var rec recorder
	f := New[int]()
	f.Peep(rec.peep("v"))

	failing := &failingIter{after: 1}
	err := f.Drain(context.Background(), Concat(FromSlice([]int{7}), Iterator[int](failing), FromSlice([]int{8})))
	if !stderrors.Is(err, errSource) {
		t.Fatalf("expected source error, got %v", err)
	}
	if !failing.closed {
		t.Error("expected every source to be closed")
	}
	if diff := cmp.Diff([]string{"v:7", "v:0"}, rec.events); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestConcat_CloseReportsFirstError(t *testing.T) {
	first := stderrors.New("first")
	src := Concat(
		Iterator[int](closeErrIter{FromSlice([]int{1}), nil}),
		Iterator[int](closeErrIter{FromSlice([]int{2}), first}),
		Iterator[int](closeErrIter{FromSlice([]int{3}), stderrors.New("second")}),
	)
	if err := src.Close(); !stderrors.Is(err, first) {
		t.Errorf("expected first close error, got %v", err)
	}
}
