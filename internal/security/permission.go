package security

import "context"

// 権限チェック対象のリソース種別（閉じた列挙）
type TargetType string

const (
	TargetPost    TargetType = "POST"
	TargetComment TargetType = "COMMENT"
)

var knownTargetTypes = []TargetType{TargetPost, TargetComment}

// リソース種別ごとの所有者チェック
type TargetAwareEvaluator interface {
	SupportType() TargetType
	HasPermission(ctx context.Context, user AuthenticatedUser, targetID int64, targetType TargetType, extra []any) (bool, error)
}

// 種別タグから担当のEvaluatorに振り分ける
type PermissionDispatcher struct {
	delegates map[TargetType]TargetAwareEvaluator
}

// 起動時に一度だけ組み立てる。知らない種別のEvaluatorは登録しない。
func NewPermissionDispatcher(evaluators ...TargetAwareEvaluator) *PermissionDispatcher {
	delegates := make(map[TargetType]TargetAwareEvaluator, len(knownTargetTypes))
	for _, e := range evaluators {
		if e == nil {
			continue
		}
		for _, t := range knownTargetTypes {
			if e.SupportType() == t {
				delegates[t] = e
			}
		}
	}
	return &PermissionDispatcher{delegates: delegates}
}

// 未登録の種別は常にfalse（deny by default）
func (d *PermissionDispatcher) HasPermission(ctx context.Context, user AuthenticatedUser, targetID int64, targetType TargetType, extra []any) (bool, error) {
	delegate, ok := d.delegates[targetType]
	if !ok {
		return false, nil
	}
	return delegate.HasPermission(ctx, user, targetID, targetType, extra)
}
