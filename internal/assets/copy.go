package assets

import (
	"errors"
	"io"
)

var ErrTooLarge = errors.New("asset exceeds size limit")

// drain reads src to the end and fails once more than limit bytes arrive
// (limit <= 0 disables the check).
func drain(src io.Reader, limit int64) (int64, error) {
	buf := make([]byte, 32*1024)
	var total int64
	for {
		nr, er := src.Read(buf)

		if nr > 0 {
			total += int64(nr)
			if limit > 0 && total > limit {
				return total, ErrTooLarge
			}
		}

		if er != nil {
			if er == io.EOF {
				break
			}
			return total, er
		}
	}

	return total, nil
}
