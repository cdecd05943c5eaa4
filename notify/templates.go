// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/dustin/go-humanize"
)

const (
	registrationSubject = "Complete Your Voter Registration - Class Representative Election"
	votingSubject       = "Your Voting Link - Class Representative Election"
)

var registrationTmpl = template.Must(template.New("registration").Parse(`<html>
  <body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1>Class Representative Election</h1>
    <h2>Complete Your Registration</h2>
    <p>Hello!</p>
    <p>To complete your registration, open the link below:</p>
    <p><a href="{{.Link}}">Complete Registration</a></p>
    <p>This link expires {{.Expires}}. If you didn't request this registration, please ignore this email.</p>
    <p style="color: #999; font-size: 12px;">Link: {{.Link}}</p>
  </body>
</html>
`))

var votingTmpl = template.Must(template.New("voting").Parse(`<html>
  <body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1>Your Voting Link is Ready</h1>
    <h2>Hello {{.Name}}!</h2>
    <p>Your secure voting link is ready.</p>
    <p><a href="{{.Link}}">Start Voting</a></p>
    <ul>
      <li>Class: {{.Class}}</li>
      <li>Expires: {{.Expires}}</li>
      <li>Security: One-time use token</li>
    </ul>
    <p style="color: #999; font-size: 12px;">Link: {{.Link}}</p>
  </body>
</html>
`))

type linkData struct {
	Name    string
	Class   string
	Link    string
	Expires string
}

// RegistrationLink builds the email carrying a registration link
func RegistrationLink(to, link string, now, expiresAt time.Time) (Message, error) {
	return render(registrationTmpl, to, registrationSubject, linkData{
		Link:    link,
		Expires: humanize.RelTime(now, expiresAt, "from now", "ago"),
	})
}

// VotingLink builds the email carrying a voting link
func VotingLink(to, name, class, link string, now, expiresAt time.Time) (Message, error) {
	return render(votingTmpl, to, votingSubject, linkData{
		Name:    name,
		Class:   class,
		Link:    link,
		Expires: humanize.RelTime(now, expiresAt, "from now", "ago"),
	})
}

func render(t *template.Template, to, subject string, data linkData) (Message, error) {
	var b bytes.Buffer
	if err := t.Execute(&b, data); err != nil {
		return Message{}, fmt.Errorf("failed to render %s email: %w", t.Name(), err)
	}
	return Message{To: to, Subject: subject, HTML: b.String()}, nil
}
