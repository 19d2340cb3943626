package validation

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Rule предикат над полем payload и сообщение, если предикат не выполнен
type Rule struct {
	Field   string
	Message string
	Check   func(raw any, ok bool) bool
}

// field правила одного поля и нормализация его значения
type field struct {
	name      string
	rules     []Rule
	normalize func(raw any) any
}

// Error отказ валидации: первое нарушенное правило
type Error struct {
	Validator string
	Field     string
	Message   string
}

func (e *Error) Error() string {
	return e.Message
}

// Validator упорядоченный список правил; проверка останавливается на первом нарушении
type Validator struct {
	name   string
	rules  []Rule
	fields []field
}

func newValidator(name string, fields ...field) *Validator {
	v := &Validator{name: name, fields: fields}
	for _, f := range fields {
		v.rules = append(v.rules, f.rules...)
	}
	return v
}

// Name имя валидатора (используется в логах и метриках)
func (v *Validator) Name() string {
	return v.name
}

// Rules возвращает правила в порядке проверки
func (v *Validator) Rules() []Rule {
	return v.rules
}

// Validate проверяет payload и при успехе нормализует его на месте
// При ошибке payload не изменяется
func (v *Validator) Validate(p Payload) error {
	for _, rule := range v.rules {
		raw, ok := p[rule.Field]
		if !rule.Check(raw, ok) {
			return &Error{Validator: v.name, Field: rule.Field, Message: rule.Message}
		}
	}

	for _, f := range v.fields {
		p[f.name] = f.normalize(p[f.name])
	}
	return nil
}

// text обязательная строка длиной не более maxLen символов после обрезки
func text(name, label string, maxLen int) field {
	return field{
		name: name,
		rules: []Rule{
			requiredRule(name, label),
			maxLengthRule(name, label, maxLen),
		},
		normalize: normalizeString,
	}
}

// opaque обязательная строка без ограничения длины
func opaque(name, label string) field {
	return field{
		name:      name,
		rules:     []Rule{requiredRule(name, label)},
		normalize: normalizeString,
	}
}

// emailField обязательный адрес: сначала формат, затем длина
func emailField(name, label string, maxLen int) field {
	return field{
		name: name,
		rules: []Rule{
			requiredRule(name, label),
			{
				Field:   name,
				Message: "Invalid email format",
				Check: func(raw any, _ bool) bool {
					s, _ := trimmed(raw)
					return emailPattern.MatchString(s)
				},
			},
			maxLengthRule(name, label, maxLen),
		},
		normalize: normalizeString,
	}
}

// idField положительный целочисленный идентификатор
func idField(name, label string) field {
	return field{
		name: name,
		rules: []Rule{{
			Field:   name,
			Message: fmt.Sprintf("Valid %s ID is required", label),
			Check: func(raw any, ok bool) bool {
				if !present(raw, ok) {
					return false
				}
				n, parsed := toInt(raw)
				return parsed && n > 0
			},
		}},
		normalize: func(raw any) any {
			n, _ := toInt(raw)
			return n
		},
	}
}

// nonNegative неотрицательное число; неверный формат и отрицательное
// значение дают одно и то же сообщение
func nonNegative(name, label string) field {
	return field{
		name: name,
		rules: []Rule{{
			Field:   name,
			Message: fmt.Sprintf("Valid %s is required (must be positive)", label),
			Check: func(raw any, ok bool) bool {
				if !present(raw, ok) {
					return false
				}
				f, parsed := toFloat(raw)
				return parsed && f >= 0
			},
		}},
		normalize: func(raw any) any {
			f, _ := toFloat(raw)
			return f
		},
	}
}

func requiredRule(name, label string) Rule {
	return Rule{
		Field:   name,
		Message: label + " is required",
		Check: func(raw any, ok bool) bool {
			if !present(raw, ok) {
				return false
			}
			_, nonEmpty := trimmed(raw)
			return nonEmpty
		},
	}
}

func maxLengthRule(name, label string, maxLen int) Rule {
	return Rule{
		Field:   name,
		Message: fmt.Sprintf("%s must be %d characters or less", label, maxLen),
		Check: func(raw any, _ bool) bool {
			s, _ := trimmed(raw)
			return utf8.RuneCountInString(s) <= maxLen
		},
	}
}

func normalizeString(raw any) any {
	s, _ := trimmed(raw)
	return s
}
