package scoring

// 自举训练用的合成数据。首次启动且没有持久化模型时用它拟合，
// 保证任何时刻都能给出预测；真实数据积累后通过重训接口替换

// syntheticScoreData 覆盖答对/答错两种情形下不同题干长度、选项数、
// 解析长度与题目位置的组合。目标值为单题得分（0-100）
func syntheticScoreData() (x [][]float64, y []float64) {
	samples := []struct {
		f      FeatureVector
		target float64
	}{
		{FeatureVector{120, 1, 4, 80, 0}, 96},
		{FeatureVector{85, 1, 4, 60, 1}, 92},
		{FeatureVector{150, 1, 4, 95, 2}, 97},
		{FeatureVector{60, 1, 2, 20, 3}, 88},
		{FeatureVector{200, 1, 5, 120, 4}, 95},
		{FeatureVector{95, 1, 3, 45, 2}, 90},
		{FeatureVector{130, 1, 4, 70, 1}, 94},
		{FeatureVector{75, 1, 4, 0, 0}, 85},
		{FeatureVector{110, 0, 4, 75, 0}, 12},
		{FeatureVector{90, 0, 4, 55, 1}, 8},
		{FeatureVector{140, 0, 4, 90, 2}, 15},
		{FeatureVector{65, 0, 2, 25, 3}, 20},
		{FeatureVector{180, 0, 5, 110, 4}, 10},
		{FeatureVector{100, 0, 3, 40, 0}, 18},
		{FeatureVector{125, 0, 4, 65, 3}, 9},
		{FeatureVector{80, 0, 4, 0, 4}, 22},
	}
	for _, s := range samples {
		x = append(x, s.f.Row())
		y = append(y, s.target)
	}
	return x, y
}

// syntheticStrengthData 按规则阈值的三个区域手工标注 (得分, 用时) 样本，
// 包括 "高分但超时" 这类只看得分会误判的组合
func syntheticStrengthData() (x [][]float64, labels []string) {
	samples := []struct {
		score    float64
		duration float64
		label    Strength
	}{
		{95, 120, StrengthStrong},
		{100, 60, StrengthStrong},
		{90, 180, StrengthStrong},
		{88, 150, StrengthStrong},
		{85, 240, StrengthStrong},
		{82, 290, StrengthStrong},
		{75, 400, StrengthModerate},
		{70, 350, StrengthModerate},
		{78, 560, StrengthModerate},
		{65, 500, StrengthModerate},
		{60, 320, StrengthModerate},
		{55, 450, StrengthModerate},
		{52, 590, StrengthModerate},
		{45, 700, StrengthWeak},
		{40, 650, StrengthWeak},
		{35, 1000, StrengthWeak},
		{30, 900, StrengthWeak},
		{20, 1100, StrengthWeak},
		{10, 1200, StrengthWeak},
		{85, 800, StrengthWeak},
		{90, 750, StrengthWeak},
		{48, 150, StrengthWeak},
	}
	for _, s := range samples {
		x = append(x, []float64{s.score, s.duration})
		labels = append(labels, string(s.label))
	}
	return x, labels
}
