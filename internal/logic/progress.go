package logic

import (
	"github.com/BabyGoatsInc/baby-goats-service/internal/model"
)

// ReduceProgress 按挑战类型把贡献账本归约成当前进度。
// 纯函数，对同一份账本重复计算结果不变，任何时刻都可以安全重算。
func ReduceProgress(challengeType model.ChallengeType, values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	switch challengeType {
	case model.ChallengeTypeCollaborative:
		// 协作型：取平均值，新的低贡献会拉低均值，这是有意保留的语义
		var sum float64
		for _, v := range values {
			sum += v
		}
		return sum / float64(len(values))

	case model.ChallengeTypeCompetitive:
		// 竞争型：取最大单次贡献
		max := values[0]
		for _, v := range values[1:] {
			if v > max {
				max = v
			}
		}
		return max

	case model.ChallengeTypeCumulative:
		fallthrough
	default:
		// 累计型及未识别类型：求和
		var sum float64
		for _, v := range values {
			sum += v
		}
		return sum
	}
}

// CompletionPercentage 计算完成百分比，截断在 [0, 100]
func CompletionPercentage(progress, target float64) float64 {
	if target <= 0 {
		return 0
	}
	pct := progress / target * 100
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}
