package common

import "testing"

func TestFileAndRangeSpecParse(t *testing.T) {
	cases := []struct {
		input     string
		wantPath  string
		wantStart int64
		wantEnd   int64
		wantPct   bool
		wantErr   bool
	}{
		{"file.bin", "file.bin", 0, -1, false, false},
		{"file.bin#0-1024", "file.bin", 0, 1024, false, false},
		{"file.bin#512-", "file.bin", 512, -1, false, false},
		{"file.bin#1024", "file.bin", 0, 1024, false, false},
		{"file.bin#10%-50%", "file.bin", 1000, 5000, true, false},
		{"file.bin#50%", "file.bin", 0, 5000, true, false},
		{"file.bin#50-10", "file.bin", 0, 0, false, true},
		{"file.bin#50%-10%", "file.bin", 0, 0, true, true},
	}

	for _, tc := range cases {
		var rs FileAndRangeSpec
		err := rs.Parse(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("Parse(%q): expected error, got none", tc.input)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Parse(%q): unexpected error: %v", tc.input, err)
		}
		if rs.FilePath != tc.wantPath || rs.Start != tc.wantStart || rs.End != tc.wantEnd || rs.IsPercent != tc.wantPct {
			t.Errorf("Parse(%q) = %+v, want {%s %d %d %v}", tc.input, rs, tc.wantPath, tc.wantStart, tc.wantEnd, tc.wantPct)
		}
	}
}

func TestFileAndRangeSpecStringRoundTrip(t *testing.T) {
	cases := []struct {
		rs   FileAndRangeSpec
		want string
	}{
		{FileAndRangeSpec{FilePath: "file.bin", Start: 0, End: -1}, "file.bin"},
		{FileAndRangeSpec{FilePath: "file.bin", Start: 0, End: 1024}, "file.bin#0-1024"},
		{FileAndRangeSpec{FilePath: "file.bin", Start: 512, End: -1}, "file.bin#512-"},
		{FileAndRangeSpec{FilePath: "file.bin", Start: 1000, End: 5000, IsPercent: true}, "file.bin#10%-50%"},
	}
	for _, tc := range cases {
		got := tc.rs.String()
		if got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
		var back FileAndRangeSpec
		if err := back.Parse(got); err != nil || back != tc.rs {
			t.Errorf("Parse(%q) = %+v, %v; want %+v", got, back, err, tc.rs)
		}
	}
}

func TestFileAndRangeSpecPercentAbsoluteRoundTrip(t *testing.T) {
	rs := FileAndRangeSpec{FilePath: "file.bin", Start: 100, End: 400}
	const fileSize = int64(1000)

	pct := rs.ToPercentRange(fileSize)
	if !pct.IsPercent {
		t.Fatalf("ToPercentRange did not set IsPercent")
	}

	back := pct.ToAbsoluteRange(fileSize)
	if back.Start != rs.Start || back.End != rs.End || back.IsPercent {
		t.Errorf("round trip = %+v, want %+v", back, rs)
	}
}

func TestFileAndRangeSpecGetRangeSize(t *testing.T) {
	rs := FileAndRangeSpec{FilePath: "file.bin", Start: 0, End: -1}
	if got := rs.GetRangeSize(2048); got != 2048 {
		t.Errorf("GetRangeSize(whole file) = %d, want 2048", got)
	}

	ranged := FileAndRangeSpec{FilePath: "file.bin", Start: 100, End: 500}
	if got := ranged.GetRangeSize(2048); got != 400 {
		t.Errorf("GetRangeSize(ranged) = %d, want 400", got)
	}
}

func TestIncrementalRanges(t *testing.T) {
	ranges := IncrementalRanges("file.bin", 1000, 25)
	if len(ranges) != 4 {
		t.Fatalf("got %d ranges, want 4", len(ranges))
	}
	for _, r := range ranges {
		if !r.IsPercent {
			t.Errorf("range %+v is not percent-based", r)
		}
	}
	if ranges[0].Start != 0 || ranges[len(ranges)-1].End != 10000 {
		t.Errorf("ranges do not cover 0%% to 100%%: first=%+v last=%+v", ranges[0], ranges[len(ranges)-1])
	}
}
