package evictor

import (
	"strconv"
	"testing"
	"time"
)

func Benchmark_Map_Put(b *testing.B) {
	m, err := New[string, int](WithNoopScheduler[string, int]())
	if err != nil {
		b.Fatal(err)
	}
	defer m.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = m.PutTTL(strconv.Itoa(i%1000), i, time.Minute)
	}
}

func Benchmark_Map_Get(b *testing.B) {
	m, err := New[string, int](WithNoopScheduler[string, int]())
	if err != nil {
		b.Fatal(err)
	}
	defer m.Close()

	for i := 0; i < 1000; i++ {
		_, _, _ = m.PutTTL(strconv.Itoa(i), i, time.Minute)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Get(strconv.Itoa(i % 1000))
	}
}

func benchmarkScheduler(b *testing.B, sched Scheduler[string, int]) {
	defer sched.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e, err := newEntry[string, int](strconv.Itoa(i), i, time.Minute, time.Now())
		if err != nil {
			b.Fatal(err)
		}
		sched.ScheduleEviction(e, func(*Entry[string, int]) {})
		sched.CancelEviction(e)
	}
}

func Benchmark_Scheduler_PerEntry(b *testing.B) {
	benchmarkScheduler(b, NewPerEntryScheduler[string, int]())
}

func Benchmark_Scheduler_Interval(b *testing.B) {
	s, err := NewIntervalScheduler[string, int](newRadixQueue[string, int](), time.Second)
	if err != nil {
		b.Fatal(err)
	}
	benchmarkScheduler(b, s)
}

func Benchmark_Scheduler_Delayed(b *testing.B) {
	benchmarkScheduler(b, NewDelayedScheduler[string, int](newRadixQueue[string, int]()))
}

func Benchmark_Scheduler_Thread(b *testing.B) {
	benchmarkScheduler(b, NewThreadScheduler[string, int](newHeapQueue[string, int]()))
}

func Benchmark_Queue_Radix_InsertDrain(b *testing.B) {
	q := newRadixQueue[string, int]()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e, _ := newEntry[string, int](strconv.Itoa(i), i, time.Minute, time.Now())
		q.Insert(e, func(*Entry[string, int]) {})
		q.Drain(e.Deadline())
	}
}

func Benchmark_Queue_Heap_InsertDrain(b *testing.B) {
	q := newHeapQueue[string, int]()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e, _ := newEntry[string, int](strconv.Itoa(i), i, time.Minute, time.Now())
		q.Insert(e, func(*Entry[string, int]) {})
		q.Drain(e.Deadline())
	}
}
