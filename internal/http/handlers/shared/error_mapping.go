package shared

import (
	"errors"

	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/i18n"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
)

// MappedHandlerError 定义业务错误到接口错误响应的映射关系。
type MappedHandlerError struct {
	Target error
	Code   int
	Key    string
}

// ServiceErrorRules 业务错误映射表
var ServiceErrorRules = []MappedHandlerError{
	{Target: service.ErrInvalidQuantity, Code: response.CodeBadRequest, Key: "error.invalid_quantity"},
	{Target: service.ErrInvalidStatus, Code: response.CodeBadRequest, Key: "error.invalid_status"},
	{Target: service.ErrInvalidGuestCart, Code: response.CodeBadRequest, Key: "error.guest_cart_invalid"},
	{Target: service.ErrProductNotFound, Code: response.CodeBadRequest, Key: "error.product_not_found"},
	{Target: service.ErrEmptyCart, Code: response.CodeBadRequest, Key: "error.empty_cart"},
	{Target: service.ErrProductUnavailable, Code: response.CodeBadRequest, Key: "error.product_unavailable"},
	{Target: service.ErrInvalidTransition, Code: response.CodeBadRequest, Key: "error.invalid_transition"},
	{Target: service.ErrInvalidCredentials, Code: response.CodeUnauthorized, Key: "error.invalid_credentials"},
	{Target: service.ErrUnauthorized, Code: response.CodeUnauthorized, Key: "error.unauthorized"},
	{Target: service.ErrForbidden, Code: response.CodeForbidden, Key: "error.forbidden"},
	{Target: service.ErrBlockedAccount, Code: response.CodeForbidden, Key: "error.account_blocked"},
	{Target: service.ErrUserNotFound, Code: response.CodeNotFound, Key: "error.user_not_found"},
	{Target: service.ErrCartItemNotFound, Code: response.CodeNotFound, Key: "error.cart_item_not_found"},
	{Target: service.ErrOrderNotFound, Code: response.CodeNotFound, Key: "error.order_not_found"},
	{Target: service.ErrTransactionFailure, Code: response.CodeInternal, Key: "error.transaction_failed"},
}

// RespondServiceError 按映射表输出业务错误；未命中时使用兜底 key 并记录原始错误。
// 封禁错误额外返回 is_blocked 标记供前端提示联系管理员。
func RespondServiceError(c *gin.Context, err error, fallbackKey string) {
	locale := i18n.ResolveLocale(c)
	for _, rule := range ServiceErrorRules {
		if !errors.Is(err, rule.Target) {
			continue
		}
		appErr := response.WrapError(rule.Code, i18n.T(locale, rule.Key), nil)
		var svcErr *service.Error
		if errors.As(err, &svcErr) {
			appErr.WithErrorCode(svcErr.Code)
		}
		if rule.Code == response.CodeInternal {
			// 存储失败需要保留原因
			appErr.Err = err
		}
		var data interface{}
		if errors.Is(err, service.ErrBlockedAccount) {
			data = gin.H{"is_blocked": true}
		}
		respondAppError(c, appErr, data)
		return
	}
	respondAppError(c, response.WrapError(response.CodeInternal, i18n.T(locale, fallbackKey), err), nil)
}
