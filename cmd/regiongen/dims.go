package main

import (
	"fmt"
	"strconv"
	"strings"
)

// parseDims parses "WxH" into positive dimensions.
func parseDims(s string) (uint32, uint32, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, 0, fmt.Errorf("dimensions %q: want WxH", s)
	}
	w, err := strconv.ParseUint(ws, 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("dimensions %q: width: %w", s, err)
	}
	h, err := strconv.ParseUint(hs, 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("dimensions %q: height: %w", s, err)
	}
	if w == 0 || h == 0 {
		return 0, 0, fmt.Errorf("dimensions %q: must be positive", s)
	}
	return uint32(w), uint32(h), nil
}

// parseCoord parses "x,y" into a zone coordinate pair.
func parseCoord(s string) (int32, int32, error) {
	xs, ys, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return 0, 0, fmt.Errorf("zone %q: want x,y", s)
	}
	x, err := strconv.ParseInt(strings.TrimSpace(xs), 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("zone %q: x: %w", s, err)
	}
	y, err := strconv.ParseInt(strings.TrimSpace(ys), 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("zone %q: y: %w", s, err)
	}
	return int32(x), int32(y), nil
}
