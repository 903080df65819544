package systems

import (
	"math/rand"
	"time"
)

// RandomSource 随机数源
// 部落模式的所有随机决策都通过此接口获取随机数，便于测试中注入固定序列
type RandomSource interface {
	// Float01 返回 [0, 1) 内的均匀随机数
	Float01() float64
}

// PRNG 基于 math/rand 的可复现随机数源
type PRNG struct {
	rng *rand.Rand
}

// NewPRNG 以指定种子创建随机数源
// 种子为 0 时使用当前时间
func NewPRNG(seed int64) *PRNG {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &PRNG{rng: rand.New(rand.NewSource(seed))}
}

// Float01 返回 [0, 1) 内的均匀随机数
func (p *PRNG) Float01() float64 {
	return p.rng.Float64()
}

// RandomTimeRange 返回 [min, max) 内的随机时长
// max <= min 时返回 min
func RandomTimeRange(rng RandomSource, min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(rng.Float01()*float64(max-min))
}
