package service

import "errors"

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrMisconfigured = errors.New("config invalid")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	// ErrUpstream - credential store(DB) 계층 실패. 502로 응답한다.
	ErrUpstream = errors.New("upstream store error")

	ErrBadHeader        = errors.New("bad token header")
	ErrInvalidPassword  = errors.New("password incorrect")
	ErrTokenExpired     = errors.New("token expired")
	ErrTokenInvalid     = errors.New("token invalid")
	ErrTokenUndecodable = errors.New("token undecodable")
	ErrTokenNotExpired  = errors.New("access token not expired")
	ErrReloginRequired  = errors.New("login required")
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionMismatch  = errors.New("session mismatch")

	ErrCodeMismatch = errors.New("verification code mismatch")
	ErrMailDelivery = errors.New("mail delivery failed")

	ErrAlreadyInProgress = errors.New("challenge already in progress")
	ErrTooManyChallenges = errors.New("too many challenges")
	ErrNothingToWrite    = errors.New("no challenge left today")
)
