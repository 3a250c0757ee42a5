package usecase

import "errors"

var (
	//400 入力不足
	ErrValidation = errors.New("validation error")
	//401 認証失敗
	ErrUnauthorized = errors.New("unauthorized")
	//403　権限
	ErrForbidden = errors.New("forbidden")
	//404 投稿・コメントが存在しない
	ErrNotFound = errors.New("not found")
	//409 email/nicknameがもう使われている
	ErrConflict = errors.New("conflict")
	//500
	ErrInternal = errors.New("internal error")
)
