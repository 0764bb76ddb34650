// Package template provides mail body template rendering.
//
// 지원하는 변수 형식:
//
//	{{user.identifier}}, {{user.nickname}}, {{user.email}}
//	{{code}}, {{expires_in}}, {{password}}
package template

import (
	"fmt"
	"strings"
	"time"
)

const (
	VerificationSubject = "[Daily Write] 이메일 인증 코드"
	VerificationBody    = `안녕하세요.

이메일 인증 코드는 {{code}} 입니다.
코드는 {{expires_in}} 동안 유효합니다.`

	TemporaryPasswordSubject = "[Daily Write] 임시 비밀번호 안내"
	TemporaryPasswordBody    = `{{user.identifier}} 님, 안녕하세요.

요청하신 임시 비밀번호는 {{password}} 입니다.
로그인 후 비밀번호를 변경해 주세요.`
)

// UserData - 템플릿 렌더링에 사용할 유저 데이터
type UserData struct {
	Identifier string
	Nickname   string
	Email      string
}

// MailData - 메일 한 통에 들어가는 값. 비어 있는 항목은 빈 문자열로 치환된다.
type MailData struct {
	User      *UserData
	Code      string
	ExpiresIn time.Duration
	Password  string
}

// RenderBody - 메일 본문 템플릿의 변수를 실제 값으로 치환
func RenderBody(body string, data MailData) string {
	pairs := make([]string, 0, 12)

	if data.User != nil {
		pairs = append(pairs,
			"{{user.identifier}}", data.User.Identifier,
			"{{user.nickname}}", data.User.Nickname,
			"{{user.email}}", data.User.Email,
		)
	} else {
		pairs = append(pairs,
			"{{user.identifier}}", "",
			"{{user.nickname}}", "",
			"{{user.email}}", "",
		)
	}

	pairs = append(pairs,
		"{{code}}", data.Code,
		"{{expires_in}}", formatDuration(data.ExpiresIn),
		"{{password}}", data.Password,
	)

	return strings.NewReplacer(pairs...).Replace(body)
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return ""
	}
	if d%time.Minute == 0 {
		return fmt.Sprintf("%d분", int(d/time.Minute))
	}
	return fmt.Sprintf("%d초", int(d/time.Second))
}
