package recommend

import (
	"fmt"
	"strings"

	"cocktail-recommender/internal/core/match"
	"cocktail-recommender/internal/pkg/common"
)

// ViewAllFlag 前端送出此值時略過過濾，回傳全部食譜
const ViewAllFlag = "VIEW_ALL_RECIPES_FLAG"

// Query 推薦請求
type Query struct {
	Selected []string `json:"selected"`
	Logic    string   `json:"logic"`
}

// ParsedQuery 已驗證的請求
type ParsedQuery struct {
	Selection match.Selection
	Policy    match.Policy
	ViewAll   bool
}

// ParseQuery 驗證請求。全部食譜模式下允許省略 logic；
// 其他情況 logic 必須是可辨識的值，不做預設。
func ParseQuery(q Query) (ParsedQuery, error) {
	var pq ParsedQuery

	names := make([]string, 0, len(q.Selected))
	for _, s := range q.Selected {
		s = strings.TrimSpace(s)
		if s == ViewAllFlag {
			pq.ViewAll = true
			continue
		}
		names = append(names, s)
	}
	pq.Selection = match.NewSelection(names...)

	if pq.ViewAll && strings.TrimSpace(q.Logic) == "" {
		return pq, nil
	}

	policy, err := match.ParsePolicy(q.Logic)
	if err != nil {
		return ParsedQuery{}, common.ErrInvalidLogic.Wrap(err)
	}
	pq.Policy = policy
	return pq, nil
}

// String 用於日誌與快取鍵
func (pq ParsedQuery) String() string {
	if pq.ViewAll {
		return "view_all"
	}
	return fmt.Sprintf("%s:%s", pq.Policy, strings.Join(pq.Selection.Sorted(), "\x1f"))
}
