package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 結果ラベル
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

var (
	// ログイン試行
	LoginTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_login_total",
		Help: "Login attempts by result.",
	}, []string{"result"})

	// リフレッシュ（ローテーション）試行
	RefreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_refresh_total",
		Help: "Refresh token rotations by result.",
	}, []string{"result"})

	// Bearer認証の拒否理由
	AuthRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_rejected_total",
		Help: "Rejected bearer authentications by reason.",
	}, []string{"reason"})

	// 権限チェックの結果
	PermissionDecisionTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "permission_decision_total",
		Help: "Permission decisions by target type and outcome.",
	}, []string{"target", "outcome"})
)

func Result(err error) string {
	if err != nil {
		return ResultFailure
	}
	return ResultSuccess
}
