package security

import (
	"context"
	"testing"

	"community/internal/domain/model"
	"community/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks
// =====================

type PostRepoMock struct{ mock.Mock }

func (m *PostRepoMock) Create(ctx context.Context, post *model.Post) error {
	panic("not used in permission tests")
}

func (m *PostRepoMock) FindByID(ctx context.Context, postID int64) (*model.Post, error) {
	args := m.Called(ctx, postID)
	p, _ := args.Get(0).(*model.Post)
	return p, args.Error(1)
}

func (m *PostRepoMock) List(ctx context.Context, q repository.PageQuery) ([]model.Post, int64, error) {
	panic("not used in permission tests")
}

func (m *PostRepoMock) ListByUserID(ctx context.Context, userID int64, q repository.PageQuery) ([]model.Post, int64, error) {
	panic("not used in permission tests")
}

func (m *PostRepoMock) Update(ctx context.Context, post *model.Post) error {
	panic("not used in permission tests")
}

func (m *PostRepoMock) Delete(ctx context.Context, postID int64) error {
	panic("not used in permission tests")
}

type CommentRepoMock struct{ mock.Mock }

func (m *CommentRepoMock) Create(ctx context.Context, comment *model.Comment) error {
	panic("not used in permission tests")
}

func (m *CommentRepoMock) FindByID(ctx context.Context, commentID int64) (*model.Comment, error) {
	args := m.Called(ctx, commentID)
	c, _ := args.Get(0).(*model.Comment)
	return c, args.Error(1)
}

func (m *CommentRepoMock) ListByPostID(ctx context.Context, postID int64, q repository.PageQuery) ([]model.Comment, int64, error) {
	panic("not used in permission tests")
}

func (m *CommentRepoMock) Update(ctx context.Context, comment *model.Comment) error {
	panic("not used in permission tests")
}

func (m *CommentRepoMock) Delete(ctx context.Context, commentID int64) error {
	panic("not used in permission tests")
}

var (
	_ repository.PostRepository    = (*PostRepoMock)(nil)
	_ repository.CommentRepository = (*CommentRepoMock)(nil)
)

type EvaluatorMock struct {
	mock.Mock
	target TargetType
}

func (m *EvaluatorMock) SupportType() TargetType { return m.target }

func (m *EvaluatorMock) HasPermission(ctx context.Context, user AuthenticatedUser, targetID int64, targetType TargetType, extra []any) (bool, error) {
	args := m.Called(ctx, user, targetID, targetType, extra)
	return args.Bool(0), args.Error(1)
}

// =====================
// Dispatcher
// =====================

func TestPermissionDispatcher_UnknownTypeDenies(t *testing.T) {
	post := &EvaluatorMock{target: TargetPost}
	d := NewPermissionDispatcher(post)

	ok, err := d.HasPermission(context.Background(), AuthenticatedUser{UserID: 1}, 1, TargetComment, nil)
	assert.NoError(t, err)
	assert.False(t, ok)

	ok, err = d.HasPermission(context.Background(), AuthenticatedUser{UserID: 1}, 1, TargetType("ALBUM"), nil)
	assert.NoError(t, err)
	assert.False(t, ok)

	post.AssertNotCalled(t, "HasPermission", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPermissionDispatcher_Delegates(t *testing.T) {
	ctx := context.Background()
	user := AuthenticatedUser{UserID: 3}
	extra := []any{int64(9), int64(4)}

	comment := &EvaluatorMock{target: TargetComment}
	comment.On("HasPermission", ctx, user, int64(9), TargetComment, extra).Return(true, nil).Once()

	d := NewPermissionDispatcher(&EvaluatorMock{target: TargetPost}, comment)

	ok, err := d.HasPermission(ctx, user, 9, TargetComment, extra)
	assert.NoError(t, err)
	assert.True(t, ok)
	comment.AssertExpectations(t)
}

func TestPermissionDispatcher_LastRegisteredWins(t *testing.T) {
	ctx := context.Background()
	user := AuthenticatedUser{UserID: 1}

	first := &EvaluatorMock{target: TargetPost}
	second := &EvaluatorMock{target: TargetPost}
	second.On("HasPermission", ctx, user, int64(1), TargetPost, []any(nil)).Return(true, nil)

	d := NewPermissionDispatcher(first, nil, second)

	ok, err := d.HasPermission(ctx, user, 1, TargetPost, nil)
	assert.NoError(t, err)
	assert.True(t, ok)
	first.AssertNotCalled(t, "HasPermission", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// =====================
// Post
// =====================

func TestPostPermissionEvaluator(t *testing.T) {
	ctx := context.Background()
	posts := new(PostRepoMock)
	posts.On("FindByID", ctx, int64(10)).Return(&model.Post{ID: 10, UserID: 7}, nil)
	posts.On("FindByID", ctx, int64(11)).Return(nil, repository.ErrPostNotFound)

	e := NewPostPermissionEvaluator(posts)
	assert.Equal(t, TargetPost, e.SupportType())

	ok, err := e.HasPermission(ctx, AuthenticatedUser{UserID: 7}, 10, TargetPost, nil)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = e.HasPermission(ctx, AuthenticatedUser{UserID: 8}, 10, TargetPost, nil)
	assert.NoError(t, err)
	assert.False(t, ok)

	_, err = e.HasPermission(ctx, AuthenticatedUser{UserID: 7}, 11, TargetPost, nil)
	assert.ErrorIs(t, err, repository.ErrPostNotFound)
}

// =====================
// Comment
// =====================

func TestCommentPermissionEvaluator_Scoping(t *testing.T) {
	ctx := context.Background()
	comments := new(CommentRepoMock)
	comments.On("FindByID", ctx, int64(9)).Return(&model.Comment{ID: 9, PostID: 4, UserID: 3}, nil)

	e := NewCommentPermissionEvaluator(comments)
	assert.Equal(t, TargetComment, e.SupportType())

	cases := []struct {
		name  string
		user  int64
		extra []any
		want  bool
	}{
		{"owner and matching post", 3, []any{int64(9), int64(4)}, true},
		{"int post id", 3, []any{9, 4}, true},
		{"float post id", 3, []any{9, float64(4)}, true},
		{"other user", 5, []any{int64(9), int64(4)}, false},
		{"other post", 3, []any{int64(9), int64(5)}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ok, err := e.HasPermission(ctx, AuthenticatedUser{UserID: c.user}, 9, TargetComment, c.extra)
			assert.NoError(t, err)
			assert.Equal(t, c.want, ok)
		})
	}
}

func TestCommentPermissionEvaluator_BadExtraShape(t *testing.T) {
	ctx := context.Background()
	comments := new(CommentRepoMock)
	comments.On("FindByID", ctx, int64(9)).Return(&model.Comment{ID: 9, PostID: 4, UserID: 3}, nil)
	e := NewCommentPermissionEvaluator(comments)

	for _, extra := range [][]any{nil, {}, {int64(4)}, {1, 2, 3}, {1, "4"}, {1, nil}, {1, 4.5}} {
		ok, err := e.HasPermission(ctx, AuthenticatedUser{UserID: 3}, 9, TargetComment, extra)
		assert.NoError(t, err)
		assert.False(t, ok, "%v", extra)
	}
}

// コメントが無いときは、extraの形が何であっても404側のエラー
func TestCommentPermissionEvaluator_NotFoundBeforeExtraShape(t *testing.T) {
	ctx := context.Background()
	comments := new(CommentRepoMock)
	comments.On("FindByID", ctx, int64(404)).Return(nil, repository.ErrCommentNotFound)
	e := NewCommentPermissionEvaluator(comments)

	for _, extra := range [][]any{nil, {}, {1, "4"}, {1, 2, 3}} {
		ok, err := e.HasPermission(ctx, AuthenticatedUser{UserID: 3}, 404, TargetComment, extra)
		assert.ErrorIs(t, err, repository.ErrCommentNotFound, "%v", extra)
		assert.False(t, ok)
	}
}

func TestCommentPermissionEvaluator_NotFound(t *testing.T) {
	ctx := context.Background()
	comments := new(CommentRepoMock)
	comments.On("FindByID", ctx, int64(9)).Return(nil, repository.ErrCommentNotFound)

	_, err := NewCommentPermissionEvaluator(comments).HasPermission(ctx, AuthenticatedUser{UserID: 3}, 9, TargetComment, []any{9, 4})
	assert.ErrorIs(t, err, repository.ErrCommentNotFound)
}

func TestPrincipalContext(t *testing.T) {
	_, ok := PrincipalFrom(context.Background())
	assert.False(t, ok)

	ctx := WithPrincipal(context.Background(), AuthenticatedUser{UserID: 12})
	user, ok := PrincipalFrom(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(12), user.UserID)
}
