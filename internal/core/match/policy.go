package match

import (
	"errors"
	"fmt"
	"strings"
)

// Policy 比對策略
type Policy string

const (
	// PolicyAny 選取任一產品即符合 (OR)
	PolicyAny Policy = "ANY"
	// PolicyAll 所選產品都必須是食譜需要的 (AND)
	PolicyAll Policy = "ALL"
)

// ErrInvalidPolicy 無法辨識的比對策略
var ErrInvalidPolicy = errors.New("invalid match policy")

// ParsePolicy 解析比對策略。接受 ANY/ALL 與舊版前端送出的 OR/AND，大小寫不拘。
// 空字串與其他值一律回傳錯誤，不做預設。
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ANY", "OR":
		return PolicyAny, nil
	case "ALL", "AND":
		return PolicyAll, nil
	}
	return "", fmt.Errorf("%w: %q (supported values: %s)", ErrInvalidPolicy, s, strings.Join(SupportedPolicies(), ", "))
}

// IsValid 是否為已知策略
func (p Policy) IsValid() bool {
	return p == PolicyAny || p == PolicyAll
}

func (p Policy) String() string {
	return string(p)
}

// SupportedPolicies 支援的策略名稱
func SupportedPolicies() []string {
	return []string{string(PolicyAny), string(PolicyAll)}
}
