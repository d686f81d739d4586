package merge

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// progressTracker turns ffmpeg -progress key=value lines into a completion
// ratio that never goes backwards.
type progressTracker struct {
	total    float64
	last     float64
	callback func(float64)
}

func newProgressTracker(total float64, callback func(float64)) *progressTracker {
	if callback == nil {
		callback = func(float64) {}
	}
	return &progressTracker{total: total, callback: callback}
}

// parseOutTime extracts seconds from an out_time_us or out_time_ms line.
// ffmpeg reports both keys in microseconds.
func parseOutTime(line string) (float64, bool) {
	key, value, ok := strings.Cut(strings.TrimSpace(line), "=")
	if !ok || (key != "out_time_us" && key != "out_time_ms") {
		return 0, false
	}
	us, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || us < 0 {
		return 0, false
	}
	return float64(us) / 1e6, true
}

func (p *progressTracker) line(line string) {
	if p.total <= 0 {
		return
	}
	seconds, ok := parseOutTime(line)
	if !ok {
		return
	}
	ratio := min(1, seconds/p.total)
	if ratio <= p.last {
		return
	}
	p.last = ratio
	p.callback(ratio)
}

// consume reads r to EOF.
func (p *progressTracker) consume(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		p.line(scanner.Text())
	}
	return scanner.Err()
}

// finish publishes the terminal value unconditionally.
func (p *progressTracker) finish(ok bool) {
	if ok {
		p.last = 1
		p.callback(1)
		return
	}
	p.last = 0
	p.callback(0)
}
