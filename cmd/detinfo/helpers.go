package main

import (
	"strings"

	"github.com/legend-exp/detinfo/internal/detector"
	"github.com/legend-exp/detinfo/internal/dettable"
)

// splitList accepts both repeated flags and comma separated values.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func tableOptions(params, types []string, maxOrder int) (dettable.Options, error) {
	ts, err := detector.ParseTypes(splitList(types))
	if err != nil {
		return dettable.Options{}, err
	}
	return dettable.Options{Params: splitList(params), Types: ts, MaxOrder: dettable.OrderLimit(maxOrder)}, nil
}
