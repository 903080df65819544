package utils

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// SuggestName 在候选名称中查找与 name 最接近的一个
//
// 用于配置校验和预缓存阶段给出 "did you mean" 提示。
// 距离上限随候选名称长度增长，距离相同时按字典序取第一个。
//
// 返回：
//   - string: 最接近的候选名称
//   - bool: 是否找到足够接近的候选
func SuggestName(name string, candidates []string) (string, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || len(candidates) == 0 {
		return "", false
	}

	sorted := make([]string, len(candidates))
	copy(sorted, candidates)
	sort.Strings(sorted)

	best := ""
	bestDist := -1
	for _, cand := range sorted {
		if cand == name {
			return cand, true
		}
		dist := levenshtein.ComputeDistance(name, strings.ToLower(cand))
		if dist > suggestLimit(len(cand)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best = cand
			bestDist = dist
		}
	}

	return best, bestDist >= 0
}

// suggestLimit 允许的最大编辑距离
func suggestLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
