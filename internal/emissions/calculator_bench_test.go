package emissions

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
)

func benchmarkInputs(count int) []CalculationInput {
	inputs := make([]CalculationInput, count)
	for i := range inputs {
		inputs[i] = dieselInput(float64(i + 1))
	}
	return inputs
}

func newBenchCalculator(b *testing.B) *Calculator {
	b.Helper()
	calc, err := New(testFactors(), WithLogger(zerolog.Nop()))
	if err != nil {
		b.Fatal(err)
	}
	return calc
}

// BenchmarkBatchCalculate measures sequential calculation of 10k inputs.
func BenchmarkBatchCalculate(b *testing.B) {
	b.ReportAllocs()
	calc := newBenchCalculator(b)
	inputs := benchmarkInputs(10000)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = calc.BatchCalculate(ctx, inputs)
	}
}

// BenchmarkBatchCalculateConcurrent measures the batched worker path on 10k inputs.
func BenchmarkBatchCalculateConcurrent(b *testing.B) {
	b.ReportAllocs()
	calc := newBenchCalculator(b)
	inputs := benchmarkInputs(10000)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := calc.BatchCalculateConcurrent(ctx, inputs, BatchOptions{Workers: 8}); err != nil {
			b.Fatal(err)
		}
	}
}
