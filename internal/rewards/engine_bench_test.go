package rewards

import "testing"

func BenchmarkApplyAdoption(b *testing.B) {
	engine := NewEngine()
	s := demoStats()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		out := engine.ApplyAdoption(s, 4800)
		s = out.Stats
	}
}

func BenchmarkBadgeProgress(b *testing.B) {
	engine := NewEngine()
	s := demoStats()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = engine.BadgeProgress(s)
	}
}
