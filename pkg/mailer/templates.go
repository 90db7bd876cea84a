package mailer

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

type emailTemplate struct {
	subject string
	text    *texttemplate.Template
	html    *htmltemplate.Template
}

var templates = map[string]emailTemplate{
	TemplateWelcome: {
		subject: "コーヒージャーナルへようこそ",
		text: texttemplate.Must(texttemplate.New("welcome.txt").Parse(
			"{{.Nickname}}さん\n\n" +
				"コーヒージャーナルへの登録ありがとうございます。\n" +
				"最初のテイスティング記録をつけてみましょう。\n",
		)),
		html: htmltemplate.Must(htmltemplate.New("welcome.html").Parse(
			"<p>{{.Nickname}}さん</p>" +
				"<p>コーヒージャーナルへの登録ありがとうございます。<br>" +
				"最初のテイスティング記録をつけてみましょう。</p>",
		)),
	},
	TemplateVerifyEmail: {
		subject: "メールアドレスの確認",
		text: texttemplate.Must(texttemplate.New("verify.txt").Parse(
			"コーヒージャーナルへの登録を受け付けました。\n\n" +
				"以下のリンクからメールアドレスの確認を完了してください（有効期限: {{.ExpiresIn}}）。\n" +
				"{{.VerifyURL}}\n\n" +
				"心当たりがない場合はこのメールを破棄してください。\n",
		)),
		html: htmltemplate.Must(htmltemplate.New("verify.html").Parse(
			"<p>コーヒージャーナルへの登録を受け付けました。</p>" +
				"<p><a href=\"{{.VerifyURL}}\">メールアドレスを確認する</a>（有効期限: {{.ExpiresIn}}）</p>" +
				"<p>心当たりがない場合はこのメールを破棄してください。</p>",
		)),
	},
	TemplateResetPassword: {
		subject: "パスワード再設定のご案内",
		text: texttemplate.Must(texttemplate.New("reset.txt").Parse(
			"パスワード再設定のリクエストを受け付けました。\n\n" +
				"以下のリンクから新しいパスワードを設定してください（有効期限: {{.ExpiresIn}}）。\n" +
				"{{.ResetURL}}\n\n" +
				"心当たりがない場合はこのメールを破棄してください。\n",
		)),
		html: htmltemplate.Must(htmltemplate.New("reset.html").Parse(
			"<p>パスワード再設定のリクエストを受け付けました。</p>" +
				"<p><a href=\"{{.ResetURL}}\">新しいパスワードを設定する</a>（有効期限: {{.ExpiresIn}}）</p>" +
				"<p>心当たりがない場合はこのメールを破棄してください。</p>",
		)),
	},
}

// Render produces subject, text and HTML bodies for a named template.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	tpl, ok := templates[name]
	if !ok {
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
	var tb, hb bytes.Buffer
	if err := tpl.text.Execute(&tb, data); err != nil {
		return "", "", "", err
	}
	if err := tpl.html.Execute(&hb, data); err != nil {
		return "", "", "", err
	}
	return tpl.subject, tb.String(), hb.String(), nil
}
