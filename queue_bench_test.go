package tokebi

import "testing"

func BenchmarkQueue_Enqueue(b *testing.B) {
	q := NewQueue()
	event := Event{EventType: "bench", Payload: map[string]any{"k": "v"}}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		q.Enqueue(event)
	}
}

func BenchmarkQueue_EnqueueParallel(b *testing.B) {
	q := NewQueue()
	event := Event{EventType: "bench"}

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			q.Enqueue(event)
		}
	})
}

func BenchmarkQueue_DrainAll(b *testing.B) {
	event := Event{EventType: "bench"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		q := NewQueue()
		for j := 0; j < 100; j++ {
			q.Enqueue(event)
		}
		b.StartTimer()
		q.DrainAll()
	}
}

func BenchmarkCoerceAttributes(b *testing.B) {
	attrs := map[string]string{
		"level":    "world1.level3",
		"score":    "100",
		"accuracy": "0.87",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		coerceAttributes(attrs)
	}
}
