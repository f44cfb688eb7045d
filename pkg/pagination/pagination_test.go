package pagination

import "testing"

func TestNormalizeLimit(t *testing.T) {
	cases := map[int]int{0: DefaultLimit, -3: DefaultLimit, 10: 10, MaxLimit: MaxLimit, 500: MaxLimit}
	for in, want := range cases {
		if got := NormalizeLimit(in); got != want {
			t.Fatalf("NormalizeLimit(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestParamsNormalize(t *testing.T) {
	got := Params{Limit: 0, Offset: -5}.Normalize()
	if got.Limit != DefaultLimit || got.Offset != 0 {
		t.Fatalf("unexpected normalized params %+v", got)
	}
	got = Params{Limit: 20, Offset: 40}.Normalize()
	if got.Limit != 20 || got.Offset != 40 {
		t.Fatalf("unexpected normalized params %+v", got)
	}
}
