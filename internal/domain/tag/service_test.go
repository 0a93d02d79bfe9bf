package tag

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type tagLink struct {
	taskID uuid.UUID
	tagID  uuid.UUID
}

type mockRepository struct {
	tags  map[uuid.UUID]*Tag
	tasks map[uuid.UUID]bool
	links []tagLink
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		tags:  make(map[uuid.UUID]*Tag),
		tasks: make(map[uuid.UUID]bool),
	}
}

func (m *mockRepository) Create(_ context.Context, tag *Tag) error {
	if tag.ID == uuid.Nil {
		tag.ID = uuid.New()
	}
	if tag.Color == "" {
		tag.Color = DefaultColor
	}
	copied := *tag
	m.tags[tag.ID] = &copied
	return nil
}

func (m *mockRepository) FindByID(_ context.Context, id uuid.UUID) (*Tag, error) {
	tag, ok := m.tags[id]
	if !ok {
		return nil, ErrTagNotFound
	}
	copied := *tag
	return &copied, nil
}

func (m *mockRepository) FindByName(_ context.Context, name string) (*Tag, error) {
	for _, tag := range m.tags {
		if tag.Name == name {
			copied := *tag
			return &copied, nil
		}
	}
	return nil, ErrTagNotFound
}

func (m *mockRepository) FindAll(_ context.Context, _ TagFilter) ([]Tag, int64, error) {
	var out []Tag
	for _, tag := range m.tags {
		out = append(out, *tag)
	}
	return out, int64(len(out)), nil
}

func (m *mockRepository) Update(_ context.Context, tag *Tag) error {
	if _, ok := m.tags[tag.ID]; !ok {
		return ErrTagNotFound
	}
	copied := *tag
	m.tags[tag.ID] = &copied
	return nil
}

func (m *mockRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.tags[id]; !ok {
		return ErrTagNotFound
	}
	delete(m.tags, id)
	return nil
}

func (m *mockRepository) AttachToTask(_ context.Context, tagID, taskID uuid.UUID) error {
	for _, link := range m.links {
		if link.tagID == tagID && link.taskID == taskID {
			return nil
		}
	}
	m.links = append(m.links, tagLink{taskID: taskID, tagID: tagID})
	return nil
}

func (m *mockRepository) DetachFromTask(_ context.Context, tagID, taskID uuid.UUID) error {
	for i, link := range m.links {
		if link.tagID == tagID && link.taskID == taskID {
			m.links = append(m.links[:i], m.links[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *mockRepository) TaskExists(_ context.Context, taskID uuid.UUID) (bool, error) {
	return m.tasks[taskID], nil
}

func newTestService(repo TagRepository) Service {
	return NewService(repo, zap.NewNop())
}

func TestCreateTag(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)

	tag, err := svc.CreateTag(context.Background(), CreateTagInput{Name: "urgent", Color: "#FF0000"})
	require.NoError(t, err)
	assert.Equal(t, "urgent", tag.Name)
	assert.Equal(t, "#FF0000", tag.Color)
	assert.NotEqual(t, uuid.Nil, tag.ID)
}

func TestCreateTagDefaultColor(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)

	tag, err := svc.CreateTag(context.Background(), CreateTagInput{Name: "backlog"})
	require.NoError(t, err)
	assert.Equal(t, DefaultColor, tag.Color)
}

func TestCreateTagDuplicateName(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)

	_, err := svc.CreateTag(context.Background(), CreateTagInput{Name: "urgent"})
	require.NoError(t, err)

	_, err = svc.CreateTag(context.Background(), CreateTagInput{Name: "urgent"})
	assert.ErrorIs(t, err, ErrTagNameTaken)
}

func TestUpdateTagNameConflict(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)

	first, err := svc.CreateTag(context.Background(), CreateTagInput{Name: "urgent"})
	require.NoError(t, err)
	_, err = svc.CreateTag(context.Background(), CreateTagInput{Name: "blocked"})
	require.NoError(t, err)

	name := "blocked"
	_, err = svc.UpdateTag(context.Background(), first.ID, UpdateTagInput{Name: &name})
	assert.ErrorIs(t, err, ErrTagNameTaken)
}

func TestAttachAndDetachTag(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)

	tag, err := svc.CreateTag(context.Background(), CreateTagInput{Name: "urgent"})
	require.NoError(t, err)

	taskID := uuid.New()
	repo.tasks[taskID] = true

	require.NoError(t, svc.AttachTag(context.Background(), tag.ID, taskID))
	assert.Len(t, repo.links, 1)

	// Attaching again must stay idempotent
	require.NoError(t, svc.AttachTag(context.Background(), tag.ID, taskID))
	assert.Len(t, repo.links, 1)

	require.NoError(t, svc.DetachTag(context.Background(), tag.ID, taskID))
	assert.Empty(t, repo.links)
}

func TestAttachTagUnknownTask(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)

	tag, err := svc.CreateTag(context.Background(), CreateTagInput{Name: "urgent"})
	require.NoError(t, err)

	err = svc.AttachTag(context.Background(), tag.ID, uuid.New())
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestAttachTagUnknownTag(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)

	taskID := uuid.New()
	repo.tasks[taskID] = true

	err := svc.AttachTag(context.Background(), uuid.New(), taskID)
	assert.ErrorIs(t, err, ErrTagNotFound)
}
