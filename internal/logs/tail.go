package logs

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

const maxLineBytes = 1024 * 1024

// TailOptions controls which lines Tail returns.
type TailOptions struct {
	// Limit is the number of trailing lines returned; zero returns none and
	// only positions the offset at the end of the file.
	Limit int
	// Match keeps only lines containing this substring when set.
	Match string
}

// TailResult holds the selected lines and the offset to resume from.
type TailResult struct {
	Lines  []string
	Offset int64
}

// Tail returns the last opts.Limit matching lines of path. A missing file
// yields an empty result.
func Tail(path string, opts TailOptions) (TailResult, error) {
	file, err := openLog(path)
	if err != nil || file == nil {
		return TailResult{}, err
	}
	defer file.Close()

	var ring []string
	if opts.Limit > 0 {
		ring = make([]string, opts.Limit)
	}
	count, idx := 0, 0
	offset, err := scanLines(file, func(line string) {
		if len(ring) == 0 || !matches(line, opts.Match) {
			return
		}
		ring[idx] = line
		idx = (idx + 1) % len(ring)
		if count < len(ring) {
			count++
		}
	})
	if err != nil {
		return TailResult{}, err
	}

	lines := make([]string, count)
	if count == len(ring) {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%len(ring)]
		}
	} else {
		copy(lines, ring[:count])
	}
	return TailResult{Lines: lines, Offset: offset}, nil
}

// Follow polls path from offset every interval and passes each batch of new
// matching lines to emit. It returns nil when ctx ends. A file that shrinks
// below offset is read again from the start.
func Follow(ctx context.Context, path string, offset int64, match string, interval time.Duration, emit func([]string)) error {
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		lines, next, err := readFrom(path, offset, match)
		if err != nil {
			return err
		}
		offset = next
		if len(lines) > 0 {
			emit(lines)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func readFrom(path string, offset int64, match string) ([]string, int64, error) {
	file, err := openLog(path)
	if err != nil || file == nil {
		return nil, 0, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, offset, fmt.Errorf("stat log file: %w", err)
	}
	if offset < 0 || offset > info.Size() {
		offset = 0
	}
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return nil, offset, fmt.Errorf("seek log file: %w", err)
	}

	var lines []string
	end, err := scanLines(file, func(line string) {
		if matches(line, match) {
			lines = append(lines, line)
		}
	})
	if err != nil {
		return nil, offset, err
	}
	return lines, end, nil
}

func openLog(path string) (*os.File, error) {
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("stat log file: %w", err)
	}
	if info.IsDir() {
		_ = file.Close()
		return nil, fmt.Errorf("log path %q is a directory", path)
	}
	return file, nil
}

// scanLines feeds every complete line after the current position to fn and
// returns the offset just past the last complete line. A trailing partial
// line is left for the next read.
func scanLines(file *os.File, fn func(string)) (int64, error) {
	start, err := file.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, fmt.Errorf("determine log offset: %w", err)
	}
	reader := bufio.NewReaderSize(file, 64*1024)
	offset := start
	for {
		line, err := reader.ReadString('\n')
		if errors.Is(err, io.EOF) {
			return offset, nil
		}
		if err != nil {
			return offset, fmt.Errorf("read log file: %w", err)
		}
		offset += int64(len(line))
		if len(line) > maxLineBytes {
			line = line[:maxLineBytes]
		}
		fn(strings.TrimRight(line, "\r\n"))
	}
}

func matches(line, match string) bool {
	return match == "" || strings.Contains(line, match)
}
