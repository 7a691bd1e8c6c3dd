package common

import (
	"fmt"
	"io"
)

// PrepareRangeReader returns an io.Reader limited to the byte range
// described by rs. If rs describes no range (Start 0, End -1), the range
// is the whole file as sized by os.Stat on rs.FilePath.
func PrepareRangeReader(reader io.Reader, rs FileAndRangeSpec) (io.Reader, error) {
	var r io.Reader = reader

	start, end, err := rs.ToBytes()
	if err != nil {
		return nil, fmt.Errorf("invalid range: %w", err)
	}

	if start > 0 {
		if seeker, ok := reader.(io.Seeker); ok {
			if _, err := seeker.Seek(start, io.SeekStart); err != nil {
				return nil, fmt.Errorf("seeking to start offset %d: %w", start, err)
			}
		} else {
			if _, err := io.CopyN(io.Discard, r, start); err != nil {
				return nil, fmt.Errorf("skipping to start offset %d: %w", start, err)
			}
		}
	}
	r = io.LimitReader(r, end-start)
	return r, nil
}
