package pool

import "testing"

func BenchmarkNew(b *testing.B) {
	for range b.N {
		p := New(WithWorkerCount(4))
		p.Shutdown()
	}
}

func BenchmarkSubmit(b *testing.B) {
	p := New(WithWorkerCount(4))

	b.ResetTimer()
	for range b.N {
		_, _ = Submit(p, func() (int, error) { return 0, nil })
	}
	b.StopTimer()

	p.Shutdown()
}

func BenchmarkSubmitAndGet(b *testing.B) {
	p := New(WithWorkerCount(4))

	b.ResetTimer()
	for range b.N {
		f, err := Submit(p, func() (int, error) { return 1, nil })
		if err != nil {
			b.Fatal(err)
		}
		if _, err := f.Get(); err != nil {
			b.Fatal(err)
		}
	}
	b.StopTimer()

	p.Shutdown()
}

func BenchmarkSubmitParallel(b *testing.B) {
	p := New()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			f, err := Submit(p, func() (int, error) { return 1, nil })
			if err != nil {
				b.Fatal(err)
			}
			_, _ = f.Get()
		}
	})
	b.StopTimer()

	p.Shutdown()
}

func BenchmarkWaitForAll(b *testing.B) {
	p := New(WithWorkerCount(4))

	b.ResetTimer()
	for range b.N {
		for range 16 {
			_, _ = Submit(p, func() (struct{}, error) { return struct{}{}, nil })
		}
		p.WaitForAll()
	}
	b.StopTimer()

	p.Shutdown()
}
