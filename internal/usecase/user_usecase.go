package usecase

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"community/internal/repository"
)

type UserDTO struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Nickname  string `json:"nickname"`
	CreatedAt string `json:"created_at"`
}

// 会員登録前の重複チェック結果
type AvailabilityDTO struct {
	Available bool `json:"available"`
}

type ProfileUpdateRequest struct {
	Nickname string `json:"nickname"`
}

type UserUsecase struct {
	users repository.UserRepository
}

func NewUserUsecase(users repository.UserRepository) *UserUsecase {
	return &UserUsecase{users: users}
}

// ログイン中のユーザー自身
func (u *UserUsecase) Me(ctx context.Context, userID int64) (UserDTO, error) {
	if userID <= 0 {
		return UserDTO{}, ErrUnauthorized
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		//トークンは正しいがユーザーが消えている
		if errors.Is(err, repository.ErrUserNotFound) {
			return UserDTO{}, ErrUnauthorized
		}
		return UserDTO{}, ErrInternal
	}

	return UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		Nickname:  user.Nickname,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}, nil
}

// email・nicknameのどちらか（または両方）がまだ使われていないか。
// 使われていればErrConflict、どちらも空ならErrValidation。
func (u *UserUsecase) Availability(ctx context.Context, email string, nickname string) (AvailabilityDTO, error) {
	email = strings.TrimSpace(email)
	nickname = strings.TrimSpace(nickname)
	if email == "" && nickname == "" {
		return AvailabilityDTO{}, ErrValidation
	}

	if email != "" {
		if err := ensureFree(u.users.FindByEmail(ctx, email)); err != nil {
			return AvailabilityDTO{}, err
		}
	}
	if nickname != "" {
		if err := ensureFree(u.users.FindByNickname(ctx, nickname)); err != nil {
			return AvailabilityDTO{}, err
		}
	}
	return AvailabilityDTO{Available: true}, nil
}

func ensureFree(_ any, err error) error {
	switch {
	case err == nil:
		return ErrConflict
	case errors.Is(err, repository.ErrUserNotFound):
		return nil
	default:
		return ErrInternal
	}
}

// ニックネームの変更。今と同じなら何もしない。
func (u *UserUsecase) UpdateProfile(ctx context.Context, userID int64, req ProfileUpdateRequest) (UserDTO, error) {
	if userID <= 0 {
		return UserDTO{}, ErrUnauthorized
	}
	nickname := strings.TrimSpace(req.Nickname)
	if n := utf8.RuneCountInString(nickname); n == 0 || n > 50 {
		return UserDTO{}, ErrValidation
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return UserDTO{}, ErrUnauthorized
		}
		return UserDTO{}, ErrInternal
	}

	if nickname != user.Nickname {
		if err := u.users.UpdateNickname(ctx, userID, nickname); err != nil {
			switch {
			case errors.Is(err, repository.ErrUserDuplicated):
				return UserDTO{}, ErrConflict
			case errors.Is(err, repository.ErrUserNotFound):
				return UserDTO{}, ErrUnauthorized
			default:
				return UserDTO{}, ErrInternal
			}
		}
	}

	return UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		Nickname:  nickname,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}, nil
}
