package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseSeeds parses the --seeds flag into an explicit, ordered list of
// seeds (spec §6), accepting one of three forms:
//   - explicit comma list: "100,205,9001"
//   - range: "100-105" (inclusive, ascending)
//   - count-at-start: "5#100" (5 seeds starting at 100: 100,101,102,103,104)
func ParseSeeds(raw string) ([]int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	if idx := strings.IndexByte(raw, '#'); idx >= 0 {
		countStr, startStr := raw[:idx], raw[idx+1:]
		count, err := strconv.Atoi(strings.TrimSpace(countStr))
		if err != nil || count <= 0 {
			return nil, fmt.Errorf("invalid --seeds count-at-start form %q", raw)
		}
		start, err := strconv.ParseInt(strings.TrimSpace(startStr), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --seeds count-at-start form %q", raw)
		}
		seeds := make([]int64, count)
		for i := range seeds {
			seeds[i] = start + int64(i)
		}
		return seeds, nil
	}

	if idx := strings.IndexByte(raw, '-'); idx > 0 {
		loStr, hiStr := raw[:idx], raw[idx+1:]
		lo, errLo := strconv.ParseInt(strings.TrimSpace(loStr), 10, 64)
		hi, errHi := strconv.ParseInt(strings.TrimSpace(hiStr), 10, 64)
		if errLo == nil && errHi == nil {
			if hi < lo {
				return nil, fmt.Errorf("invalid --seeds range %q: end before start", raw)
			}
			seeds := make([]int64, 0, hi-lo+1)
			for s := lo; s <= hi; s++ {
				seeds = append(seeds, s)
			}
			return seeds, nil
		}
	}

	parts := strings.Split(raw, ",")
	seeds := make([]int64, 0, len(parts))
	for _, p := range parts {
		s, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --seeds value %q", p)
		}
		seeds = append(seeds, s)
	}
	return seeds, nil
}

// ParseFixedValues parses the --use-fixed "K1:V1|K2:V2" flag into a
// placeholder-name -> variation-key map (spec §6, §4.6.3).
func ParseFixedValues(raw string) (map[string]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	out := make(map[string]string)
	for _, pair := range strings.Split(raw, "|") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		idx := strings.IndexByte(pair, ':')
		if idx <= 0 || idx == len(pair)-1 {
			return nil, fmt.Errorf("invalid --use-fixed entry %q, expected K:V", pair)
		}
		key := strings.TrimSpace(pair[:idx])
		value := strings.TrimSpace(pair[idx+1:])
		out[key] = value
	}
	return out, nil
}
