package template

import (
	"testing"
	"time"
)

func TestRenderBody(t *testing.T) {
	tests := []struct {
		name string
		body string
		data MailData
		want string
	}{
		{
			name: "code-and-expiry",
			body: "code={{code}} ttl={{expires_in}}",
			data: MailData{Code: "012345", ExpiresIn: 5 * time.Minute},
			want: "code=012345 ttl=5분",
		},
		{
			name: "seconds-expiry",
			body: "{{expires_in}}",
			data: MailData{ExpiresIn: 90 * time.Second},
			want: "90초",
		},
		{
			name: "user-fields",
			body: "{{user.identifier}}/{{user.nickname}}/{{user.email}}/{{password}}",
			data: MailData{User: &UserData{Identifier: "writer", Nickname: "작가", Email: "w@daily.test"}, Password: "pw"},
			want: "writer/작가/w@daily.test/pw",
		},
		{
			name: "nil-user-blank",
			body: "[{{user.identifier}}][{{expires_in}}]",
			data: MailData{},
			want: "[][]",
		},
		{
			name: "unknown-placeholder-kept",
			body: "{{unknown}}",
			data: MailData{Code: "1"},
			want: "{{unknown}}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderBody(tt.body, tt.data); got != tt.want {
				t.Fatalf("RenderBody() = %q, want %q", got, tt.want)
			}
		})
	}
}
