// Package notify defines the notification capability interface and its
// delivery channels.
//
// A [Notifier] delivers an [Event] to one channel: a native desktop popup
// ([DesktopNotifier]) or a Discord-compatible webhook ([DiscordNotifier]).
// Channels fail softly; delivery errors are returned as [DeliveryError]
// values for the watch loop to log and count, never panicked.
package notify
