package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWelcome(t *testing.T) {
	subject, text, html, err := Render(TemplateWelcome, map[string]any{"Nickname": "太郎"})
	require.NoError(t, err)
	assert.Equal(t, "コーヒージャーナルへようこそ", subject)
	assert.Contains(t, text, "太郎さん")
	assert.Contains(t, html, "太郎さん")
}

func TestRenderVerifyEmail(t *testing.T) {
	subject, text, html, err := Render(TemplateVerifyEmail, map[string]any{
		"VerifyURL": "https://example.com/verify-email?token=abc",
		"ExpiresIn": "24時間",
	})
	require.NoError(t, err)
	assert.Equal(t, "メールアドレスの確認", subject)
	assert.Contains(t, text, "https://example.com/verify-email?token=abc")
	assert.Contains(t, text, "24時間")
	assert.Contains(t, html, "24時間")
}

func TestRenderResetPassword(t *testing.T) {
	subject, text, html, err := Render(TemplateResetPassword, map[string]any{
		"ResetURL":  "https://example.com/reset?token=abc",
		"ExpiresIn": "30分",
	})
	require.NoError(t, err)
	assert.Equal(t, "パスワード再設定のご案内", subject)
	assert.Contains(t, text, "https://example.com/reset?token=abc")
	assert.Contains(t, text, "30分")
	assert.Contains(t, html, "30分")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, _, err := Render("no_such_template", nil)
	assert.Error(t, err)
}
