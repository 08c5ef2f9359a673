package cookbook

import (
	"strings"
	"unicode"
)

// Normalize 將手寫的食譜名稱整理為標準顯示名稱
//
// '-' 與 '_' 視為空白，其餘非 ASCII 字母、非空白的字元一律移除，
// 連續空白合併後每個單字首字大寫、其餘小寫。結果為空時回傳 ErrInvalidName。
func Normalize(raw string) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r == '-' || r == '_':
			return ' '
		case isASCIILetter(r) || unicode.IsSpace(r):
			return r
		default:
			return -1
		}
	}, raw)

	words := strings.Fields(cleaned)
	if len(words) == 0 {
		return "", ErrInvalidName
	}

	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " "), nil
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
