package access

import (
	"testing"

	"socialfeed/internal/core/apperror"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
)

type ownedThing struct{ owner uuid.UUID }

func (o *ownedThing) GetOwnerID() uuid.UUID { return o.owner }

func TestAuthorize(t *testing.T) {
	owner := uuid.Must(uuid.NewV4())
	other := uuid.Must(uuid.NewV4())
	g := NewGuard()

	assert.NoError(t, g.Authorize(owner, &ownedThing{owner: owner}))

	err := g.Authorize(other, &ownedThing{owner: owner})
	assert.Equal(t, apperror.KindAuthorization, apperror.KindOf(err))

	err = g.Authorize(uuid.Nil, &ownedThing{owner: uuid.Nil})
	assert.Equal(t, apperror.KindAuthorization, apperror.KindOf(err), "anonymous actor")

	err = g.Authorize(owner, nil)
	assert.Equal(t, apperror.KindAuthorization, apperror.KindOf(err), "nil resource")
}
