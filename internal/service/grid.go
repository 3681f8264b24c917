package service

import "tpch-sweep/internal/model"

// BuildGrid 生成 (iteration, core_count) 序列：iteration 为外层，core count 按调用方给定顺序为内层。
// 不排序、不去重、不过滤（0 也是合法点）。
func BuildGrid(iterations int, coreCounts []int) []model.RunPoint {
	if iterations <= 0 || len(coreCounts) == 0 {
		return nil
	}
	points := make([]model.RunPoint, 0, iterations*len(coreCounts))
	for i := 0; i < iterations; i++ {
		for pos, cc := range coreCounts {
			points = append(points, model.RunPoint{
				Iteration: i,
				CoreCount: cc,
				Position:  pos,
			})
		}
	}
	return points
}
