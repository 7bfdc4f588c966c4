package queue

import (
	"encoding/json"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/guestcart"

	"github.com/hibiken/asynq"
)

const (
	// TaskGuestCartReconcile 登录后合并游客购物车任务
	TaskGuestCartReconcile = constants.TaskGuestCartReconcile
)

// GuestCartReconcilePayload 游客购物车合并任务载荷
type GuestCartReconcilePayload struct {
	BatchID string            `json:"batch_id"`
	UserID  uint              `json:"user_id"`
	Role    string            `json:"role"`
	Entries []guestcart.Entry `json:"entries"`
}

// NewGuestCartReconcileTask 创建游客购物车合并任务
func NewGuestCartReconcileTask(payload GuestCartReconcilePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskGuestCartReconcile, body), nil
}

// DecodeGuestCartReconcilePayload 解析任务载荷
func DecodeGuestCartReconcilePayload(body []byte) (GuestCartReconcilePayload, error) {
	var payload GuestCartReconcilePayload
	err := json.Unmarshal(body, &payload)
	return payload, err
}
