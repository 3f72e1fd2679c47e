package utils

import (
	"strings"

	"github.com/gosimple/slug"
)

// CleanFilename 文件名清洗：去掉变音符号、转小写、只保留字母数字
// 清洗后为空时返回 "image"
func CleanFilename(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, slug.Make(name))
	if cleaned == "" {
		return "image"
	}
	if len(cleaned) > 64 {
		cleaned = cleaned[:64]
	}
	return cleaned
}
