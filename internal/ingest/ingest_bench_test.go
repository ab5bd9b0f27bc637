package ingest_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/rshade/ghgcalc/internal/ingest"
)

// generateInputJSON builds one calculation input with a registry factor.
func generateInputJSON(index int) string {
	input := `{"scope":"scope_2","category":"purchased_electricity","subcategory":"site-%d",` +
		`"activityData":{"amount":%d,"unit":"kWh","startDate":"2024-01-01T00:00:00Z",` +
		`"endDate":"2024-01-31T00:00:00Z"},"emissionFactorId":"grid-us"}`
	return fmt.Sprintf(input, index, 100+index)
}

func benchmarkParseInputs(b *testing.B, count int) {
	b.ReportAllocs()
	inputs := make([]string, count)
	for i := range inputs {
		inputs[i] = generateInputJSON(i)
	}
	data := []byte(fmt.Sprintf(`{"inputs": [%s]}`, strings.Join(inputs, ",")))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ingest.ParseInputs(data, ingest.FormatJSON); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkParseInputs_Typical benchmarks a typical monthly batch.
func BenchmarkParseInputs_Typical(b *testing.B) {
	benchmarkParseInputs(b, 100)
}

// BenchmarkParseInputs_Large benchmarks a 10k record document.
func BenchmarkParseInputs_Large(b *testing.B) {
	benchmarkParseInputs(b, 10000)
}
