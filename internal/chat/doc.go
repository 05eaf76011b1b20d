// Package chat implements the chat session controller: the draft, the
// append-only message history and the single in-flight request guard.
//
// A submission moves the session from idle to pending and back:
//
//	ctrl := chat.NewController(client)
//	ctrl.UpdateDraft("weather of Pune today?")
//	task, ok := ctrl.Submit()  // appends the user message, clears the draft
//	if ok {
//		ctrl.Resolve(task, task.Run(ctx)) // appends the agent message
//	}
//
// Submit never blocks. The network call lives in the returned Task so the
// caller decides where it runs (a bubbletea command, a goroutine, inline).
// Render turns a State snapshot into a description of the screen.
package chat
