package validation

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// floatPrefix десятичное число в начале строки: знак, цифры, дробная часть, экспонента
var floatPrefix = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)

// parseIntPrefix разбирает целое число из начала строки:
// ведущие пробелы пропускаются, затем необязательный знак и максимальная
// последовательность цифр. Хвост игнорируется: "7x" -> 7, "12.9" -> 12
func parseIntPrefix(s string) (int64, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}

	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseFloatPrefix разбирает вещественное число из начала строки по тем же
// правилам: "0.5kg" -> 0.5, "abc" -> не число
func parseFloatPrefix(s string) (float64, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	match := floatPrefix.FindString(s)
	if match == "" {
		return 0, false
	}

	f, err := strconv.ParseFloat(match, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// toInt приводит сырое значение поля к целому
// Числа из JSON отбрасывают дробную часть
func toInt(raw any) (int64, bool) {
	switch v := raw.(type) {
	case string:
		return parseIntPrefix(v)
	case float64:
		if math.IsInf(v, 0) || math.IsNaN(v) || math.Abs(v) >= math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	default:
		return 0, false
	}
}

// toFloat приводит сырое значение поля к вещественному числу
func toFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case string:
		return parseFloatPrefix(v)
	case float64:
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return 0, false
		}
		return v, true
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}
