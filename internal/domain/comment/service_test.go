package comment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/taskflow-dev/taskflow/internal/domain/task"
	"github.com/taskflow-dev/taskflow/internal/domain/user"
)

type mockRepository struct {
	comments map[uuid.UUID]*TaskComment
}

func (m *mockRepository) Create(_ context.Context, c *TaskComment) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	copied := *c
	m.comments[c.ID] = &copied
	return nil
}

func (m *mockRepository) FindByID(_ context.Context, id uuid.UUID) (*TaskComment, error) {
	c, ok := m.comments[id]
	if !ok {
		return nil, ErrCommentNotFound
	}
	copied := *c
	return &copied, nil
}

func (m *mockRepository) FindByTask(_ context.Context, taskID uuid.UUID) ([]TaskComment, error) {
	var out []TaskComment
	for _, c := range m.comments {
		if c.TaskID == taskID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *mockRepository) FindByAuthor(_ context.Context, userID uuid.UUID) ([]TaskComment, error) {
	var out []TaskComment
	for _, c := range m.comments {
		if c.CreatedBy == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *mockRepository) Update(_ context.Context, c *TaskComment) error {
	if _, ok := m.comments[c.ID]; !ok {
		return ErrCommentNotFound
	}
	copied := *c
	m.comments[c.ID] = &copied
	return nil
}

func (m *mockRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.comments[id]; !ok {
		return ErrCommentNotFound
	}
	delete(m.comments, id)
	return nil
}

type mockTaskRepository struct {
	tasks map[uuid.UUID]*task.Task
}

func (m *mockTaskRepository) Create(_ context.Context, t *task.Task) error {
	m.tasks[t.ID] = t
	return nil
}

func (m *mockTaskRepository) FindByID(_ context.Context, id uuid.UUID) (*task.Task, error) {
	t, ok := m.tasks[id]
	if !ok {
		return nil, task.ErrTaskNotFound
	}
	return t, nil
}

func (m *mockTaskRepository) FindByIDDetailed(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	return m.FindByID(ctx, id)
}

func (m *mockTaskRepository) FindAll(_ context.Context, _ task.TaskFilter) ([]task.Task, int64, error) {
	return nil, 0, nil
}

func (m *mockTaskRepository) FindOverdue(_ context.Context, _ time.Time) ([]task.Task, error) {
	return nil, nil
}

func (m *mockTaskRepository) FindUpcoming(_ context.Context, _ time.Time, _ int) ([]task.Task, error) {
	return nil, nil
}

func (m *mockTaskRepository) Update(_ context.Context, _ *task.Task) error {
	return nil
}

func (m *mockTaskRepository) Delete(_ context.Context, _ uuid.UUID) error {
	return nil
}

type mockUserRepository struct {
	users map[uuid.UUID]*user.User
}

func (m *mockUserRepository) Create(_ context.Context, u *user.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepository) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserRepository) FindByEmail(_ context.Context, _ string) (*user.User, error) {
	return nil, user.ErrUserNotFound
}

func (m *mockUserRepository) FindByUsername(_ context.Context, _ string) (*user.User, error) {
	return nil, user.ErrUserNotFound
}

func (m *mockUserRepository) FindAll(_ context.Context, _ user.UserFilter) ([]user.User, int64, error) {
	return nil, 0, nil
}

func (m *mockUserRepository) Update(_ context.Context, _ *user.User) error {
	return nil
}

func (m *mockUserRepository) Delete(_ context.Context, _ uuid.UUID) error {
	return nil
}

type testEnv struct {
	svc    Service
	taskID uuid.UUID
	userID uuid.UUID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	repo := &mockRepository{comments: make(map[uuid.UUID]*TaskComment)}
	taskRepo := &mockTaskRepository{tasks: make(map[uuid.UUID]*task.Task)}
	userRepo := &mockUserRepository{users: make(map[uuid.UUID]*user.User)}

	taskID := uuid.New()
	taskRepo.tasks[taskID] = &task.Task{ID: taskID, Title: "Review", ProjectID: uuid.New()}
	userID := uuid.New()
	userRepo.users[userID] = &user.User{ID: userID, Email: "dev@example.com", Username: "dev"}

	svc := NewService(repo, taskRepo, userRepo, zap.NewNop())
	return &testEnv{svc: svc, taskID: taskID, userID: userID}
}

func TestCreateComment(t *testing.T) {
	env := newTestEnv(t)

	c, err := env.svc.CreateComment(context.Background(), CreateCommentInput{
		TaskID:    env.taskID,
		CreatedBy: env.userID,
		Content:   "Looks good to me",
	})
	require.NoError(t, err)
	assert.Equal(t, "Looks good to me", c.Content)
	assert.NotEqual(t, uuid.Nil, c.ID)
}

func TestCreateCommentUnknownTask(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.CreateComment(context.Background(), CreateCommentInput{
		TaskID:    uuid.New(),
		CreatedBy: env.userID,
		Content:   "ghost",
	})
	assert.ErrorIs(t, err, task.ErrTaskNotFound)
}

func TestCreateCommentEmptyContent(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.CreateComment(context.Background(), CreateCommentInput{
		TaskID:    env.taskID,
		CreatedBy: env.userID,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateComment(t *testing.T) {
	env := newTestEnv(t)

	c, err := env.svc.CreateComment(context.Background(), CreateCommentInput{
		TaskID:    env.taskID,
		CreatedBy: env.userID,
		Content:   "first draft",
	})
	require.NoError(t, err)

	updated, err := env.svc.UpdateComment(context.Background(), c.ID, "second draft")
	require.NoError(t, err)
	assert.Equal(t, "second draft", updated.Content)

	_, err = env.svc.UpdateComment(context.Background(), uuid.New(), "nope")
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestGetTaskComments(t *testing.T) {
	env := newTestEnv(t)

	for _, content := range []string{"one", "two"} {
		_, err := env.svc.CreateComment(context.Background(), CreateCommentInput{
			TaskID:    env.taskID,
			CreatedBy: env.userID,
			Content:   content,
		})
		require.NoError(t, err)
	}

	comments, err := env.svc.GetTaskComments(context.Background(), env.taskID)
	require.NoError(t, err)
	assert.Len(t, comments, 2)
}

func TestDeleteComment(t *testing.T) {
	env := newTestEnv(t)

	c, err := env.svc.CreateComment(context.Background(), CreateCommentInput{
		TaskID:    env.taskID,
		CreatedBy: env.userID,
		Content:   "temp",
	})
	require.NoError(t, err)

	require.NoError(t, env.svc.DeleteComment(context.Background(), c.ID))
	err = env.svc.DeleteComment(context.Background(), c.ID)
	assert.ErrorIs(t, err, ErrCommentNotFound)
}
