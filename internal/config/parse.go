package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseIntList 解析 "224, 196,0" 这样的逗号列表，保持原顺序
func ParseIntList(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("%w: 非法整数 %q", ErrInvalidConfig, p)
		}
		out = append(out, v)
	}
	return out, nil
}
