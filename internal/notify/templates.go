package notify

import (
	"fmt"
	"html"
)

// WelcomeAdmin never carries the password; the administrator hands it over
// separately.
func WelcomeAdmin(to, name, username, role string) Message {
	return Message{
		To:      to,
		Subject: "Your office records account",
		Body: fmt.Sprintf(
			"<p>Hello %s,</p><p>An account with the role <b>%s</b> was created for you.</p><p>Username: <b>%s</b></p><p>Ask your administrator for the initial password and set your own password after the first login.</p>",
			html.EscapeString(name), html.EscapeString(role), html.EscapeString(username)),
	}
}

func RecordForwarded(to, recipientName, senderName, subject, tracking, notes string) Message {
	return Message{
		To:      to,
		Subject: "Record forwarded to you: " + subject,
		Body: fmt.Sprintf(
			"<p>Hello %s,</p><p>%s forwarded the record <b>%s</b> (tracking %s) to you.</p><p>Notes: %s</p>",
			html.EscapeString(recipientName), html.EscapeString(senderName), html.EscapeString(subject),
			html.EscapeString(tracking), html.EscapeString(notes)),
	}
}

func RecordReviewed(to, senderName, reviewerName, subject, decision, note string) Message {
	return Message{
		To:      to,
		Subject: fmt.Sprintf("Record %s: %s", decision, subject),
		Body: fmt.Sprintf(
			"<p>Hello %s,</p><p>%s marked the record <b>%s</b> as <b>%s</b>.</p><p>Note: %s</p>",
			html.EscapeString(senderName), html.EscapeString(reviewerName), html.EscapeString(subject),
			html.EscapeString(decision), html.EscapeString(note)),
	}
}

func LeaveDecided(to, employeeName, leaveType, start, end, status, note string) Message {
	return Message{
		To:      to,
		Subject: "Leave application " + status,
		Body: fmt.Sprintf(
			"<p>Hello %s,</p><p>Your %s leave from %s to %s was <b>%s</b>.</p><p>Note: %s</p>",
			html.EscapeString(employeeName), html.EscapeString(leaveType), start, end,
			html.EscapeString(status), html.EscapeString(note)),
	}
}

func TaskAssigned(to, employeeName, title, dueDate string) Message {
	return Message{
		To:      to,
		Subject: "New task: " + title,
		Body: fmt.Sprintf("<p>Hello %s,</p><p>You have a new task <b>%s</b> due %s.</p>",
			html.EscapeString(employeeName), html.EscapeString(title), html.EscapeString(dueDate)),
	}
}
