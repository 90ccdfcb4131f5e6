package tagapp

import (
	"context"
	"sort"
	"testing"

	"socialfeed/internal/core/access"
	"socialfeed/internal/core/apperror"
	"socialfeed/internal/core/content"
	tagEntity "socialfeed/internal/core/tag"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type memTags struct {
	tags     []*tagEntity.Tag
	assigned map[uuid.UUID]bool
	creates  int
}

func (m *memTags) FirstOrCreate(_ context.Context, ownerID uuid.UUID, name string) (*tagEntity.Tag, error) {
	for _, t := range m.tags {
		if t.OwnerID == ownerID && t.Name == name {
			return t, nil
		}
	}
	t := &tagEntity.Tag{ID: uuid.Must(uuid.NewV4()), OwnerID: ownerID, Name: name}
	m.tags = append(m.tags, t)
	m.creates++
	return t, nil
}

func (m *memTags) FindByID(_ context.Context, id uuid.UUID) (*tagEntity.Tag, error) {
	for _, t := range m.tags {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memTags) List(_ context.Context, assignedOnly bool) ([]*tagEntity.Tag, error) {
	var out []*tagEntity.Tag
	for _, t := range m.tags {
		if assignedOnly && !m.assigned[t.ID] {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name > out[j].Name })
	return out, nil
}

func (m *memTags) Rename(_ context.Context, t *tagEntity.Tag, name string) error {
	for _, other := range m.tags {
		if other.ID != t.ID && other.OwnerID == t.OwnerID && other.Name == name {
			return gorm.ErrDuplicatedKey
		}
	}
	t.Name = name
	return nil
}

func newTestService() (*TagService, *TagResolver, *memTags) {
	repo := &memTags{assigned: map[uuid.UUID]bool{}}
	resolver := NewTagResolver(repo, content.NewValidator())
	return NewTagService(repo, resolver, access.NewGuard(), zap.NewNop()), resolver, repo
}

func TestResolveIsIdempotentPerOwner(t *testing.T) {
	_, resolver, repo := newTestService()
	ctx := context.Background()
	alice := uuid.Must(uuid.NewV4())
	bob := uuid.Must(uuid.NewV4())

	first, err := resolver.Resolve(ctx, alice, []string{"go", " go ", "db"})
	require.NoError(t, err)
	require.Len(t, first, 2, "duplicates collapse")
	assert.Equal(t, "go", first[0].Name)

	again, err := resolver.Resolve(ctx, alice, []string{"go"})
	require.NoError(t, err)
	assert.Equal(t, first[0].ID, again[0].ID)

	other, err := resolver.Resolve(ctx, bob, []string{"go"})
	require.NoError(t, err)
	assert.NotEqual(t, first[0].ID, other[0].ID, "tags are per owner")
	assert.Equal(t, 3, repo.creates)
}

func TestResolveValidatesBeforeWriting(t *testing.T) {
	_, resolver, repo := newTestService()
	owner := uuid.Must(uuid.NewV4())

	_, err := resolver.Resolve(context.Background(), owner, []string{"fine", "MURDER mystery"})
	require.True(t, apperror.Is(err, apperror.KindValidation))
	assert.Equal(t, 0, repo.creates, "nothing written when any name is rejected")

	_, err = resolver.Resolve(context.Background(), owner, []string{"ok", "   "})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	assert.Equal(t, 0, repo.creates)

	tags, err := resolver.Resolve(context.Background(), owner, nil)
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestListTags(t *testing.T) {
	svc, resolver, repo := newTestService()
	ctx := context.Background()
	owner := uuid.Must(uuid.NewV4())

	tags, err := resolver.Resolve(ctx, owner, []string{"alpha", "gamma", "beta"})
	require.NoError(t, err)
	repo.assigned[tags[0].ID] = true

	all, err := svc.ListTags(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"gamma", "beta", "alpha"}, []string{all[0].Name, all[1].Name, all[2].Name})

	assigned, err := svc.ListTags(ctx, true)
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, "alpha", assigned[0].Name)
	assert.Equal(t, owner.String(), assigned[0].User)
}

func TestRenameTag(t *testing.T) {
	svc, resolver, _ := newTestService()
	ctx := context.Background()
	owner := uuid.Must(uuid.NewV4())
	stranger := uuid.Must(uuid.NewV4())

	tags, err := resolver.Resolve(ctx, owner, []string{"old", "taken"})
	require.NoError(t, err)
	id := tags[0].ID.String()

	_, err = svc.RenameTag(ctx, stranger.String(), id, "new")
	assert.True(t, apperror.Is(err, apperror.KindAuthorization))

	_, err = svc.RenameTag(ctx, owner.String(), id, "murderous")
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = svc.RenameTag(ctx, owner.String(), id, "taken")
	assert.True(t, apperror.Is(err, apperror.KindConflict))

	dto, err := svc.RenameTag(ctx, owner.String(), id, "  new ")
	require.NoError(t, err)
	assert.Equal(t, "new", dto.Name)

	got, err := svc.GetTag(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Name)

	_, err = svc.GetTag(ctx, "not-a-uuid")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	_, err = svc.GetTag(ctx, uuid.Must(uuid.NewV4()).String())
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}
