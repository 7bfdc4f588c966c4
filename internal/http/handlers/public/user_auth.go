package public

import (
	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/guestcart"
	handlershared "github.com/storefront-next/internal/http/handlers/shared"
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
)

// UserLoginRequest 登录请求，guest_cart 为登录前的游客购物车
type UserLoginRequest struct {
	Email     string            `json:"email" binding:"required"`
	Password  string            `json:"password" binding:"required"`
	GuestCart []guestcart.Entry `json:"guest_cart"`
}

// UserLogin 用户登录；携带游客购物车时在登录成功后安排合并，不等待合并结果
func (h *Handler) UserLogin(c *gin.Context) {
	var req UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Login(req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err, "error.login_failed")
		return
	}

	actor := service.Actor{UserID: user.ID, Role: user.Role}
	ticket, err := h.ReconcileService.Schedule(actor, req.GuestCart)
	if err != nil {
		handlershared.RequestLog(c).Warnw("guest_cart_reconcile_schedule_failed", "user_id", user.ID, "error", err)
		ticket = &service.ReconcileTicket{Mode: constants.ReconcileModeNone}
	}

	response.Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt.Unix(),
		"user":       userView(user),
		"reconcile":  ticket,
	})
}

// GetCurrentUser 获取当前登录用户
func (h *Handler) GetCurrentUser(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	user, err := h.UserAuthService.GetUserByID(actor.UserID)
	if err != nil {
		respondServiceError(c, err, "error.user_not_found")
		return
	}
	response.Success(c, userView(user))
}

func userView(user *models.User) gin.H {
	return gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"username":   user.Username,
		"role":       user.Role,
		"is_blocked": user.IsBlocked,
	}
}
