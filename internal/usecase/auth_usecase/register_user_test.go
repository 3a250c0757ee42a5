package auth

import (
	"context"
	"testing"

	"community/internal/domain/model"
	"community/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type HasherMock struct{ mock.Mock }

func (m *HasherMock) Hash(plain string) (string, error) {
	args := m.Called(plain)
	return args.String(0), args.Error(1)
}

func TestRegisterUser_Success(t *testing.T) {
	ctx := context.Background()
	users := new(UserRepoMock)
	hasher := new(HasherMock)

	users.On("FindByEmail", ctx, "new@example.com").Return(nil, repository.ErrUserNotFound)
	hasher.On("Hash", "long-enough-pw").Return("hashed", nil)
	users.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
		return u.Email == "new@example.com" && u.PasswordHash == "hashed" && u.Nickname == "neo"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.User).ID = 9
	}).Return(nil)

	out, err := NewRegisterUserUsecase(users, hasher).Execute(ctx, RegisterUserInput{
		Email:    " new@example.com ",
		Password: "long-enough-pw",
		Nickname: "neo",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), out.User.ID)
	assert.Empty(t, out.User.PasswordHash)
}

func TestRegisterUser_Validation(t *testing.T) {
	uc := NewRegisterUserUsecase(new(UserRepoMock), new(HasherMock))
	ctx := context.Background()

	cases := []struct {
		in   RegisterUserInput
		want error
	}{
		{RegisterUserInput{Email: "bad", Password: "long-enough-pw", Nickname: "n"}, ErrInvalidEmailFormat},
		{RegisterUserInput{Email: "a@example.com", Password: "short", Nickname: "n"}, ErrPasswordTooShort},
		{RegisterUserInput{Email: "a@example.com", Password: "password123", Nickname: "n"}, ErrWeakPassword},
		{RegisterUserInput{Email: "a@example.com", Password: "long-enough-pw", Nickname: " "}, ErrInvalidNickname},
	}
	for _, c := range cases {
		_, err := uc.Execute(ctx, c.in)
		assert.ErrorIs(t, err, c.want)
	}
}

func TestRegisterUser_Duplicate(t *testing.T) {
	ctx := context.Background()
	users := new(UserRepoMock)
	users.On("FindByEmail", ctx, "dup@example.com").Return(&model.User{ID: 1}, nil)

	_, err := NewRegisterUserUsecase(users, new(HasherMock)).Execute(ctx, RegisterUserInput{
		Email: "dup@example.com", Password: "long-enough-pw", Nickname: "dup",
	})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestBcrypt_HashAndVerify(t *testing.T) {
	h := NewBcryptPasswordHasher(4)
	hashed, err := h.Hash("correct horse")
	require.NoError(t, err)

	v := NewBcryptPasswordVerifier()
	assert.True(t, v.Verify("correct horse", hashed))
	assert.False(t, v.Verify("wrong", hashed))
	assert.False(t, v.Verify("correct horse", "not-a-hash"))
}
