package access

import (
	"socialfeed/internal/core/apperror"

	"github.com/gofrs/uuid"
)

// Ownable منابعی که مالک دارند (Post، Tag و پروفایل کاربر)
type Ownable interface {
	GetOwnerID() uuid.UUID
}

// Guard فقط به مالک اجازه تغییر منبع را می‌دهد
type Guard struct{}

func NewGuard() *Guard {
	return &Guard{}
}

// Authorize در صورت عدم مالکیت خطای Forbidden برمی‌گرداند
func (g *Guard) Authorize(actorID uuid.UUID, resource Ownable) error {
	if resource == nil || actorID == uuid.Nil {
		return apperror.Forbidden("you are not allowed to modify this resource")
	}
	if resource.GetOwnerID() != actorID {
		return apperror.Forbidden("you are not allowed to modify this resource")
	}
	return nil
}
