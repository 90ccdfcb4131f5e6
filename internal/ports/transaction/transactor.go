package transaction

import "context"

// Transactor اجرای fn داخل یک تراکنش دیتابیس؛ ریپازیتوری‌ها تراکنش را از ctx برمی‌دارند
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
