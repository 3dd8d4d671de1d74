package summary

import "testing"

func TestFloorDiv(t *testing.T) {
	cases := []struct {
		a, b, want int64
	}{
		{-5, 2, -3},
		{5, 2, 2},
		{-5, -2, 2},
		{5, -2, -3},
		{0, 7, 0},
		{6, 3, 2},
		{-6, 3, -2},
	}
	for _, c := range cases {
		if got := floorDiv(c.a, c.b); got != c.want {
			t.Errorf("floorDiv(%d, %d) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestUpdateAndMean(t *testing.T) {
	var s Summary
	for _, v := range []int16{120, -45, 999, -999, 0} {
		s.Update(v)
	}
	if s.Min != -999 || s.Max != 999 {
		t.Errorf("Min/Max = %d/%d, want -999/999", s.Min, s.Max)
	}
	if s.Count != 5 {
		t.Errorf("Count = %d, want 5", s.Count)
	}
	wantSum := int64(120 - 45 + 999 - 999 + 0)
	if s.Sum != wantSum {
		t.Errorf("Sum = %d, want %d", s.Sum, wantSum)
	}
	wantMean := floorDiv(wantSum, 5)
	if got := s.MeanTenths(); got != wantMean {
		t.Errorf("MeanTenths() = %d, want %d", got, wantMean)
	}
}

func TestMerge(t *testing.T) {
	a := New(10)
	a.Update(20)
	b := New(-30)
	b.Update(5)

	a.Merge(b)
	if a.Min != -30 || a.Max != 20 {
		t.Errorf("Min/Max after merge = %d/%d, want -30/20", a.Min, a.Max)
	}
	if a.Count != 4 {
		t.Errorf("Count after merge = %d, want 4", a.Count)
	}
	if a.Sum != 10+20-30+5 {
		t.Errorf("Sum after merge = %d, want %d", a.Sum, 10+20-30+5)
	}
}

func TestMergeEmptyOther(t *testing.T) {
	a := New(42)
	var empty Summary
	a.Merge(empty)
	if a.Count != 1 || a.Sum != 42 {
		t.Errorf("Merge with empty summary changed state: %+v", a)
	}
}

func TestMergeIntoEmpty(t *testing.T) {
	var a Summary
	b := New(7)
	a.Merge(b)
	if a.Count != 1 || a.Sum != 7 || a.Min != 7 || a.Max != 7 {
		t.Errorf("Merge into empty summary = %+v, want copy of %+v", a, b)
	}
}
