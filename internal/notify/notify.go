// Package notify sends desktop notifications for new inbox items.
package notify

// Send shows a desktop notification with the given title and body.
func Send(title, body string) error {
	return platformNotify(title, body)
}
