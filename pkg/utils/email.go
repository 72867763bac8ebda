package utils

import (
	"regexp"
	"strings"
)

// 定义正则表达式以匹配电子邮件格式
var emailRegex = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// NormalizeIdentity username 与 email 统一去空格并转小写后存储和查询
func NormalizeIdentity(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsBlank true for empty or whitespace-only input
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// BlankFields returns the names of the blank values, in order
func BlankFields(fields map[string]string, order ...string) []string {
	var blank []string
	for _, name := range order {
		if IsBlank(fields[name]) {
			blank = append(blank, name)
		}
	}
	return blank
}
