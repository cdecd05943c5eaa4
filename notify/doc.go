// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package notify sends the registration and voting link emails.

Delivery is best-effort. A failed Send never invalidates the link: the
caller always gets the link back in the API response as well.

Two Notifiers are provided:

  - SMTP: plain net/smtp client with optional STARTTLS and PLAIN auth
  - Log: writes the message to the log, for development

RegistrationLink and VotingLink render the HTML bodies.
*/
package notify
