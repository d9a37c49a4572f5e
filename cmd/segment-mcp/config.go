package main

import (
	"fmt"
	"strconv"

	"github.com/ironsheep/segment-tools-mcp/internal/imaging"
	"github.com/ironsheep/segment-tools-mcp/internal/segment"
)

// Environment variables that override segment.DefaultParams.
const (
	envThreshold        = "SEGMENT_MCP_THRESHOLD"
	envMetric           = "SEGMENT_MCP_METRIC"
	envBlurRadius       = "SEGMENT_MCP_BLUR_RADIUS"
	envBlurPasses       = "SEGMENT_MCP_BLUR_PASSES"
	envTolerance        = "SEGMENT_MCP_TOLERANCE"
	envMinSimplifyCount = "SEGMENT_MCP_MIN_SIMPLIFY_COUNT"
)

// loadParams reads the segmentation defaults from the environment. Unset
// or empty variables keep the built-in value.
func loadParams(getenv func(string) string) (segment.Params, error) {
	p := segment.DefaultParams()

	ints := []struct {
		name string
		dst  *int
	}{
		{envThreshold, &p.Threshold},
		{envBlurRadius, &p.BlurRadius},
		{envBlurPasses, &p.BlurPasses},
		{envMinSimplifyCount, &p.MinSimplifyCount},
	}
	for _, v := range ints {
		s := getenv(v.name)
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return p, fmt.Errorf("%s: %w", v.name, err)
		}
		*v.dst = n
	}

	if s := getenv(envTolerance); s != "" {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return p, fmt.Errorf("%s: %w", envTolerance, err)
		}
		p.Tolerance = f
	}
	if s := getenv(envMetric); s != "" {
		m, err := imaging.ParseMetric(s)
		if err != nil {
			return p, fmt.Errorf("%s: %w", envMetric, err)
		}
		p.Metric = m
	}

	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

// describeParams formats p for --defaults and the debug banner.
func describeParams(p segment.Params) string {
	return fmt.Sprintf("threshold=%d metric=%s blur_radius=%d blur_passes=%d tolerance=%g min_simplify_count=%d",
		p.Threshold, p.Metric, p.BlurRadius, p.BlurPasses, p.Tolerance, p.MinSimplifyCount)
}
