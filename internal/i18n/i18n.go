package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

const (
	LocaleZH = "zh-CN"
	LocaleTW = "zh-TW"
	LocaleEN = "en-US"

	// DefaultLocale 无法识别请求语言时使用
	DefaultLocale = LocaleEN

	localeHeader = "X-Locale"
	localeQuery  = "lang"
)

var supportedTags = []language.Tag{
	language.AmericanEnglish,
	language.SimplifiedChinese,
	language.TraditionalChinese,
}

var supportedLocales = []string{LocaleEN, LocaleZH, LocaleTW}

var matcher = language.NewMatcher(supportedTags)

// ResolveLocale 解析请求语言：lang 参数、X-Locale 头、Accept-Language 依次生效
func ResolveLocale(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return DefaultLocale
	}
	if locale := strings.TrimSpace(c.Query(localeQuery)); locale != "" {
		return NormalizeLocale(locale)
	}
	if locale := strings.TrimSpace(c.GetHeader(localeHeader)); locale != "" {
		return NormalizeLocale(locale)
	}
	return MatchAcceptLanguage(c.GetHeader("Accept-Language"))
}

// MatchAcceptLanguage 按 Accept-Language 匹配支持的语言
func MatchAcceptLanguage(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return DefaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultLocale
	}
	return supportedLocales[index]
}

// NormalizeLocale 统一语言标识，不支持时回退默认语言
func NormalizeLocale(locale string) string {
	tag, err := language.Parse(strings.ReplaceAll(strings.TrimSpace(locale), "_", "-"))
	if err != nil {
		return DefaultLocale
	}
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return DefaultLocale
	}
	return supportedLocales[index]
}

// T 获取翻译文本，缺失时依次回退到默认语言与 key 本身
func T(locale, key string) string {
	if table, ok := messages[locale]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	if msg, ok := messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 获取带参数的翻译文本
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}
