// Package agent provides the decision sources that sit on top of the
// game engine: simple bots, scripted sequences for tests, an
// OpenAI-compatible model client, and an interactive console player.
//
// The engine requires every decision it receives to already be legal,
// so any source that can produce bad output (models, humans) must be
// wrapped in Validating before it is seated.
package agent
