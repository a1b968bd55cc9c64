// Package discord provides a sarah.Adapter implementation for Discord.
//
// It converts Discord message events into sarah.Input and dispatches sarah.Output as Discord messages.
// Besides plain text and *discordgo.MessageSend, outputs can carry a Sequence of contents
// that must arrive in order, or an *Ephemeral message that removes itself after a while.
//
// Channel creation events are not part of go-sarah's input model.
// They are handed to the function given via WithChannelCreateHandler.
package discord
