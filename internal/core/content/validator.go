package content

import (
	"fmt"
	"strings"

	"socialfeed/internal/core/apperror"
)

// DefaultBlocklist کلمات غیرمجاز پیش‌فرض
var DefaultBlocklist = []string{"murder"}

// Validator متن را با لیست کلمات غیرمجاز مقایسه می‌کند (substring و بدون حساسیت به حروف)
type Validator struct {
	words []string
}

func NewValidator(words ...string) *Validator {
	if len(words) == 0 {
		words = DefaultBlocklist
	}
	v := &Validator{words: make([]string, 0, len(words))}
	for _, w := range words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			v.words = append(v.words, w)
		}
	}
	return v
}

// FindBlocked اولین کلمه غیرمجاز موجود در متن را برمی‌گرداند
func (v *Validator) FindBlocked(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, w := range v.words {
		if strings.Contains(lower, w) {
			return w, true
		}
	}
	return "", false
}

// Check در صورت وجود کلمه غیرمجاز خطای اعتبارسنجی برای field برمی‌گرداند
func (v *Validator) Check(field, text string) error {
	if w, found := v.FindBlocked(text); found {
		return apperror.FieldValidation(field, fmt.Sprintf("<%s> word is not an allowed word", w))
	}
	return nil
}
