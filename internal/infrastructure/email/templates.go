package email

import (
	"bytes"
	"fmt"
	"html/template"
	texttemplate "text/template"

	"github.com/tokenestate/backend/internal/domain/shared/valueobject"
	"golang.org/x/text/language"
)

// ReferralInvite is the data of an invitation e-mail
type ReferralInvite struct {
	ReferrerName string
	Code         string
	SignupURL    string
	Reward       valueobject.Money
}

const inviteHTML = `<!DOCTYPE html>
<html><body style="font-family: Helvetica, Arial, sans-serif; color: #1f2937;">
<h2>{{.ReferrerName}} invited you to TokenEstate</h2>
<p>Invest in fractional real estate starting from a single token.</p>
<p>Sign up with your referral code <strong>{{.Code}}</strong> and make your first investment.
{{- if .RewardText}} Your friend earns {{.RewardText}} when you do.{{end}}</p>
<p><a href="{{.SignupURL}}" style="background:#2563eb;color:#fff;padding:10px 18px;border-radius:6px;text-decoration:none;">Join TokenEstate</a></p>
</body></html>`

const inviteText = `{{.ReferrerName}} invited you to TokenEstate.

Sign up with referral code {{.Code}}: {{.SignupURL}}
{{if .RewardText}}Your friend earns {{.RewardText}} after your first investment.
{{end}}`

var (
	inviteHTMLTmpl = template.Must(template.New("invite.html").Parse(inviteHTML))
	inviteTextTmpl = texttemplate.Must(texttemplate.New("invite.txt").Parse(inviteText))
)

// Composer builds localized e-mail bodies
type Composer struct {
	tag language.Tag
}

// NewComposer creates a composer formatting amounts for tag
func NewComposer(tag language.Tag) *Composer {
	return &Composer{tag: tag}
}

// ReferralInvite renders the invitation for recipient
func (c *Composer) ReferralInvite(recipient string, in ReferralInvite) (Message, error) {
	data := struct {
		ReferralInvite
		RewardText string
	}{ReferralInvite: in}
	if in.Reward.IsPositive() {
		data.RewardText = in.Reward.Format(c.tag)
	}

	var html, text bytes.Buffer
	if err := inviteHTMLTmpl.Execute(&html, data); err != nil {
		return Message{}, fmt.Errorf("email: render invite html: %w", err)
	}
	if err := inviteTextTmpl.Execute(&text, data); err != nil {
		return Message{}, fmt.Errorf("email: render invite text: %w", err)
	}
	return Message{
		To:      []string{recipient},
		Subject: fmt.Sprintf("%s invited you to TokenEstate", in.ReferrerName),
		HTML:    html.String(),
		Text:    text.String(),
		Tags:    map[string]string{"category": "referral_invite"},
	}, nil
}
