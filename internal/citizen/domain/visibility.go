package domain

import "github.com/twmb/murmur3"

// ReportVisible 判定一条海外快报对某位观察者是否可见。
//
// 无状态的确定性判定：同一 (快报, 观察者) 永远同一结果，不落库；
// 不同观察者各自看到约一半、互有重叠的子集。
// 哈希只要求稳定和顺序敏感，不要求抗碰撞，所以用 murmur3 而非加密哈希。
func ReportVisible(reportID, viewerID string) bool {
	return murmur3.StringSum32(reportID+viewerID)%2 == 0
}
